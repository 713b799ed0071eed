package identity

import (
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

func LocationUUID(slugRegion, slugCity, slugLine1 string) uuid.UUID {
	return UUID("go-multisite:location:" + strings.TrimSpace(slugRegion) + ":" + strings.TrimSpace(slugCity) + ":" + strings.TrimSpace(slugLine1))
}

func PageGroupUUID(slug string) uuid.UUID {
	return UUID("go-multisite:page_group:" + strings.ToLower(strings.TrimSpace(slug)))
}

func PageUUID(path string) uuid.UUID {
	return UUID("go-multisite:page:" + strings.TrimSpace(path))
}
