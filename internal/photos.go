package internal

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/kofalt/go-memoize"

	"github.com/dublin-fuel/prices-api/internal/models"
)

const signedURLExpirySeconds = 3600

// Matches the storage path in a public object URL regardless of origin,
// e.g. when the project was moved to a custom domain.
var photoPathRe = regexp.MustCompile(`/storage/v1/object/(?:public/)?` + PhotoBucket + `/(.+)$`)

// URLSigner is the slice of SupabaseClient the resolver needs.
type URLSigner interface {
	CreateSignedURL(path string, expirySeconds int) (string, error)
}

// PhotoResolver turns stored photo references into URLs safe for display.
// Public storage URLs are exchanged for time-limited signed URLs (direct
// links are prone to cross-origin and referrer failures); anything that
// cannot be exchanged is passed through unchanged so a direct link can
// still be attempted. Signed URLs are cached for the resolver's lifetime
// only.
type PhotoResolver struct {
	signer URLSigner
	prefix string
	cache  *memoize.Memoizer
}

// NewPhotoResolver builds a resolver for remote-backend mode. In fallback
// mode pass a nil client: references then resolve to themselves.
func NewPhotoResolver(client *SupabaseClient) *PhotoResolver {
	resolver := &PhotoResolver{
		cache: memoize.NewMemoizer(time.Duration(signedURLExpirySeconds)*time.Second/2, 10*time.Minute),
	}
	if client != nil {
		resolver.signer = client
		resolver.prefix = client.baseURL + "/storage/v1/object/public/" + PhotoBucket + "/"
	}
	return resolver
}

// DisplayURL resolves a stored photo reference. It returns "" when there is
// nothing displayable (no photo, or the local-only sentinel).
func (r *PhotoResolver) DisplayURL(ref *string) string {
	if ref == nil || *ref == "" || *ref == models.PhotoLocalOnly || !strings.HasPrefix(*ref, "http") {
		return ""
	}
	if r.signer == nil {
		return *ref
	}

	path := r.extractPath(*ref)
	if path == "" {
		return *ref
	}

	signed, err, _ := r.cache.Memoize(path, func() (any, error) {
		return r.signer.CreateSignedURL(path, signedURLExpirySeconds)
	})
	if err != nil {
		log.Printf("failed to sign photo url for %s: %v", path, err)
		return *ref
	}
	return signed.(string)
}

// extractPath pulls the storage path out of a public URL, first by exact
// prefix match against the configured origin, then via the regexp fallback.
func (r *PhotoResolver) extractPath(ref string) string {
	if r.prefix != "" {
		if path, ok := strings.CutPrefix(ref, r.prefix); ok {
			return path
		}
	}
	if match := photoPathRe.FindStringSubmatch(ref); match != nil {
		return match[1]
	}
	return ""
}
