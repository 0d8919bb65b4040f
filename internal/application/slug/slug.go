// Package slug derives URL-safe post identifiers from titles.
package slug

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Separator = "-"
	// MaxLength matches the width of posts.slug.
	MaxLength = 255

	fallbackPrefix = "post"
	fallbackLength = 8
)

// ExistsFunc reports whether a slug is already stored.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Make turns title into its base slug: ASCII, lowercase, runs of anything
// other than letters and digits collapsed into a single separator and
// trimmed from both ends. It may return an empty string.
func Make(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, title)
	if err != nil {
		ascii = title
	}

	var b strings.Builder
	b.Grow(len(ascii))
	pendingSep := false
	for _, r := range strings.ToLower(ascii) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteString(Separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// GenerateUnique returns the first of base, base-1, base-2, ... for which
// exists reports false. Every candidate is checked against exists at call
// time. A title with nothing left after normalization gets a random base.
// Candidates never exceed MaxLength; the base is cut short to make room for
// the suffix.
func GenerateUnique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := truncate(Make(title), MaxLength)
	if base == "" {
		base = fallbackBase()
	}

	candidate := base
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		suffix := Separator + strconv.Itoa(n)
		candidate = truncate(base, MaxLength-len(suffix)) + suffix
	}
}

// truncate cuts s to at most limit bytes without leaving a trailing
// separator. Slugs are ASCII so bytes and runes coincide.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.TrimRight(s[:limit], Separator)
}

func fallbackBase() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fallbackPrefix + Separator + token[:fallbackLength]
}
