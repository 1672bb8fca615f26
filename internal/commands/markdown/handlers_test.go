package markdowncmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-book/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type importCall struct {
	directory string
	options   interfaces.ImportOptions
}

type syncCall struct {
	directory string
	options   interfaces.SyncOptions
}

type stubMarkdownService struct {
	importCalls []importCall
	syncCalls   []syncCall

	importResult *interfaces.ImportResult
	syncResult   *interfaces.SyncResult

	importErr error
	syncErr   error
}

func (s *stubMarkdownService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubMarkdownService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubMarkdownService) Import(context.Context, *interfaces.Document, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return nil, nil
}

func (s *stubMarkdownService) ImportDirectory(ctx context.Context, directory string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	s.importCalls = append(s.importCalls, importCall{directory: directory, options: opts})
	if s.importErr != nil {
		return nil, s.importErr
	}
	return s.importResult, nil
}

func (s *stubMarkdownService) Sync(ctx context.Context, directory string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.syncCalls = append(s.syncCalls, syncCall{directory: directory, options: opts})
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	return s.syncResult, nil
}

func TestImportDirectoryHandlerInvokesService(t *testing.T) {
	service := &stubMarkdownService{
		importResult: &interfaces.ImportResult{
			CreatedSlugs: []string{"getting-started", "variables"},
		},
	}
	handler := NewImportDirectoryHandler(service, nil, FeatureGates{})

	msg := ImportDirectoryCommand{
		Directory: "chapters",
		AuthorID:  "editor",
		Publish:   true,
		DryRun:    true,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(service.importCalls) != 1 {
		t.Fatalf("expected one import call, got %d", len(service.importCalls))
	}
	call := service.importCalls[0]
	if call.directory != "chapters" {
		t.Fatalf("unexpected directory %q", call.directory)
	}
	if !call.options.Publish || !call.options.DryRun {
		t.Fatalf("options not forwarded: %+v", call.options)
	}
	if call.options.AuthorID != "editor" {
		t.Fatalf("unexpected author %q", call.options.AuthorID)
	}
}

func TestImportDirectoryHandlerRequiresDirectory(t *testing.T) {
	service := &stubMarkdownService{}
	handler := NewImportDirectoryHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.importCalls) != 0 {
		t.Fatal("expected service not to be invoked")
	}
}

func TestImportDirectoryHandlerHonoursFeatureGate(t *testing.T) {
	service := &stubMarkdownService{}
	handler := NewImportDirectoryHandler(service, nil, FeatureGates{
		MarkdownEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "chapters"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrMarkdownFeatureDisabled) {
		t.Fatalf("expected ErrMarkdownFeatureDisabled, got %v", err)
	}
	if len(service.importCalls) != 0 {
		t.Fatal("expected service not to be invoked")
	}
}

func TestSyncDirectoryHandlerForwardsFlags(t *testing.T) {
	service := &stubMarkdownService{
		syncResult: &interfaces.SyncResult{Created: 1, Updated: 2, Deleted: 1},
	}
	handler := NewSyncDirectoryHandler(service, nil, FeatureGates{})

	msg := SyncDirectoryCommand{
		Directory:      "chapters",
		DeleteOrphaned: true,
		UpdateExisting: true,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(service.syncCalls) != 1 {
		t.Fatalf("expected one sync call, got %d", len(service.syncCalls))
	}
	opts := service.syncCalls[0].options
	if !opts.DeleteOrphaned || !opts.UpdateExisting {
		t.Fatalf("sync flags not forwarded: %+v", opts)
	}
}

func TestSyncDirectoryHandlerPropagatesServiceError(t *testing.T) {
	service := &stubMarkdownService{syncErr: errors.New("walk failed")}
	handler := NewSyncDirectoryHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncDirectoryCommand{Directory: "chapters"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRegisterMarkdownCommandsRequiresService(t *testing.T) {
	if _, err := RegisterMarkdownCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when service is nil")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterMarkdownCommandsRegistersHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	set, err := RegisterMarkdownCommands(registry, &stubMarkdownService{}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set == nil || set.Import == nil || set.Sync == nil {
		t.Fatal("expected handler set with both handlers")
	}
	if len(registry.handlers) != 2 {
		t.Fatalf("expected two registered handlers, got %d", len(registry.handlers))
	}
}
