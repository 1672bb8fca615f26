package chapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	bookchapters "github.com/goliatone/go-book/chapters"
	"github.com/goliatone/go-book/internal/domain"
	"github.com/goliatone/go-book/internal/identity"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/internal/validation"
	"github.com/goliatone/go-book/pkg/interfaces"
)

// ServiceOption configures optional service collaborators.
type ServiceOption func(*service)

// WithLogger injects a logger used for catalog mutations.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetadataSchema sets the JSON schema applied to chapter metadata.
func WithMetadataSchema(schema map[string]any) ServiceOption {
	return func(s *service) {
		s.metadataSchema = schema
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a chapter catalog service over the supplied repositories.
func NewService(chapterRepo ChapterRepository, partRepo PartRepository, opts ...ServiceOption) Service {
	svc := &service{
		chapters: chapterRepo,
		parts:    partRepo,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type service struct {
	chapters       ChapterRepository
	parts          PartRepository
	logger         interfaces.Logger
	metadataSchema map[string]any
	now            func() time.Time
}

func (s *service) Create(ctx context.Context, req CreateChapterRequest) (*Chapter, error) {
	slug, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if err := s.validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	if existing, err := s.chapters.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, &SlugConflictError{Slug: slug}
	}

	partID, err := s.resolvePart(ctx, req.Part, req.Weight)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Chapter{
		ID:        identity.ChapterUUID(slug),
		PartID:    partID,
		Slug:      slug,
		Title:     strings.TrimSpace(req.Title),
		Summary:   req.Summary,
		Number:    req.Number,
		Weight:    req.Weight,
		Status:    string(domain.NormalizeStatus(req.Status)),
		Body:      req.Body,
		BodyHTML:  req.BodyHTML,
		Checksum:  req.Checksum,
		Tags:      append([]string(nil), req.Tags...),
		Languages: append([]string(nil), req.Languages...),
		Metadata:  req.Metadata,
		CreatedBy: req.CreatedBy,
		UpdatedBy: req.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	record.Snippets = buildSnippets(record.ID, req.Snippets)

	created, err := s.chapters.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("chapters create %s: %w", slug, err)
	}

	logging.WithChapterContext(s.logger, created.Slug, req.Part, "create").
		Info("chapters.create", "chapter_id", created.ID.String())
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateChapterRequest) (*Chapter, error) {
	if req.ID == uuid.Nil {
		return nil, ErrChapterIDRequired
	}
	if err := s.validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	existing, err := s.chapters.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	partID, err := s.resolvePart(ctx, req.Part, req.Weight)
	if err != nil {
		return nil, err
	}

	existing.Title = firstNonEmpty(strings.TrimSpace(req.Title), existing.Title)
	if req.Summary != nil {
		existing.Summary = req.Summary
	}
	existing.Number = req.Number
	existing.Weight = req.Weight
	if strings.TrimSpace(req.Status) != "" {
		existing.Status = string(domain.NormalizeStatus(req.Status))
	}
	existing.Body = req.Body
	existing.BodyHTML = req.BodyHTML
	existing.Checksum = req.Checksum
	if req.Tags != nil {
		existing.Tags = append([]string(nil), req.Tags...)
	}
	if req.Languages != nil {
		existing.Languages = append([]string(nil), req.Languages...)
	}
	if req.Metadata != nil {
		existing.Metadata = req.Metadata
	}
	if partID != nil {
		existing.PartID = partID
	}
	existing.Snippets = buildSnippets(existing.ID, req.Snippets)
	existing.UpdatedBy = req.UpdatedBy
	existing.UpdatedAt = s.now()

	updated, err := s.chapters.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("chapters update %s: %w", existing.Slug, err)
	}

	logging.WithChapterContext(s.logger, updated.Slug, req.Part, "update").
		Info("chapters.update", "chapter_id", updated.ID.String())
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Chapter, error) {
	if id == uuid.Nil {
		return nil, ErrChapterIDRequired
	}
	record, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	annotate(record)
	return record, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Chapter, error) {
	normalized, err := normalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	record, err := s.chapters.GetBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}
	annotate(record)
	return record, nil
}

func (s *service) List(ctx context.Context) ([]*Chapter, error) {
	records, err := s.chapters.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		annotate(record)
	}
	return records, nil
}

func (s *service) Delete(ctx context.Context, req DeleteChapterRequest) error {
	if req.ID == uuid.Nil {
		return ErrChapterIDRequired
	}
	if !req.HardDelete {
		return ErrSoftDeleteUnsupported
	}
	if err := s.chapters.Delete(ctx, req.ID); err != nil {
		return err
	}
	logging.WithChapterContext(s.logger, req.ID.String(), "", "delete").
		Info("chapters.delete")
	return nil
}

func (s *service) EnsurePart(ctx context.Context, code, title string, weight int) (*Part, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrPartCodeRequired
	}
	if existing, err := s.parts.GetByCode(ctx, code); err == nil {
		return existing, nil
	}

	if strings.TrimSpace(title) == "" {
		title = titleFromCode(code)
	}
	record := &Part{
		ID:        identity.PartUUID(code),
		Code:      code,
		Title:     title,
		Weight:    weight,
		CreatedAt: s.now(),
	}
	return s.parts.Upsert(ctx, record)
}

func (s *service) ListParts(ctx context.Context) ([]*Part, error) {
	return s.parts.List(ctx)
}

func (s *service) resolvePart(ctx context.Context, code string, weight int) (*uuid.UUID, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	part, err := s.EnsurePart(ctx, code, "", weight)
	if err != nil {
		return nil, err
	}
	id := part.ID
	return &id, nil
}

func (s *service) validateMetadata(metadata map[string]any) error {
	if len(metadata) == 0 || len(s.metadataSchema) == 0 {
		return nil
	}
	if err := validation.ValidatePayload(s.metadataSchema, metadata); err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}
	return nil
}

func annotate(record *Chapter) {
	if record == nil {
		return
	}
	record.EffectiveStatus = domain.NormalizeStatus(record.Status)
}

func buildSnippets(chapterID uuid.UUID, inputs []SnippetInput) []*Snippet {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]*Snippet, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, &Snippet{
			ID:        identity.SnippetUUID(chapterID, in.Line, in.Language),
			ChapterID: chapterID,
			Language:  strings.ToLower(strings.TrimSpace(in.Language)),
			Source:    in.Source,
			Line:      in.Line,
		})
	}
	return out
}

func normalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	normalized, err := bookchapters.NormalizeSlug(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSlugInvalid, trimmed)
	}
	return normalized, nil
}

func titleFromCode(code string) string {
	parts := strings.FieldsFunc(code, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
