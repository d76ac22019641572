// Package storage keeps author profile images in MinIO or on local disk.
package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

// FileStore is implemented by MinIOStorage and LocalStorage.
type FileStore interface {
	// Upload stores data under key and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every object below prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
	// KeyFromURL reverses Upload's URL. ok is false for URLs this store did not issue.
	KeyFromURL(url string) (key string, ok bool)
	Ping(ctx context.Context) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// AuthorPrefix is the key prefix of every image owned by an author.
func AuthorPrefix(authorID string) string {
	return fmt.Sprintf("authors/%s/", authorID)
}

// ProfileImageKey builds authors/<id>/<unix>_<name>. The extension is forced to
// .jpg since uploads are re-encoded.
func ProfileImageKey(authorID, originalName string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(originalName, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if base == "" || base == "." {
		base = "profile"
	}
	return fmt.Sprintf("%s%d_%s.jpg", AuthorPrefix(authorID), now.Unix(), base)
}
