package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ChapterUUID keys a chapter by its normalized slug.
func ChapterUUID(slug string) uuid.UUID {
	return UUID("go-book:chapter:" + strings.ToLower(strings.TrimSpace(slug)))
}

// PartUUID keys a part by its code.
func PartUUID(code string) uuid.UUID {
	return UUID("go-book:part:" + strings.ToLower(strings.TrimSpace(code)))
}

// SnippetUUID keys a snippet by its owning chapter and position.
func SnippetUUID(chapterID uuid.UUID, line int, language string) uuid.UUID {
	return UUID("go-book:snippet:" + chapterID.String() + ":" + strings.ToLower(strings.TrimSpace(language)) + ":" + strconv.Itoa(line))
}
