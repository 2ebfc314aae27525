// Package identity derives catalog primary keys from article slugs so a
// re-sync of the same file updates the existing row.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const articlePrefix = "go-blog:article:"

// ArticleUUID maps slug to a stable UUID. Slugs are file names and compare
// case sensitively, so only surrounding space is trimmed. A blank slug maps
// to uuid.Nil.
func ArticleUUID(slug string) uuid.UUID {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return uuid.Nil
	}
	name := articlePrefix + slug
	id, err := hashid.NewUUID(name,
		hashid.WithHashAlgorithm(hashid.SHA256),
		hashid.WithNormalization(false),
	)
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}
