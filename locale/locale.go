package locale

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const DefaultLocale = "en"

var rtl = map[string]bool{"ar": true, "fa": true, "he": true, "ur": true}

// Direction returns "rtl" or "ltr" for locale.
func Direction(locale string) string {
	if rtl[locale] {
		return "rtl"
	}
	return "ltr"
}

// Resolver picks one of a fixed set of supported locales.
type Resolver struct {
	supported []string
	tags      []language.Tag
	matcher   language.Matcher
}

// NewResolver builds a resolver for supported. The default locale is moved to the front, and
// added when missing, since it is what the matcher falls back to.
func NewResolver(defaultLocale string, supported []string) *Resolver {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}

	ordered := []string{defaultLocale}
	for _, s := range supported {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && s != defaultLocale {
			ordered = append(ordered, s)
		}
	}

	r := &Resolver{}
	for _, s := range ordered {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		r.supported = append(r.supported, s)
		r.tags = append(r.tags, tag)
	}
	r.matcher = language.NewMatcher(r.tags)
	return r
}

func (r *Resolver) Default() string {
	return r.supported[0]
}

func (r *Resolver) Supported() []string {
	return append([]string(nil), r.supported...)
}

// IsSupported reports an exact match, as used for URL prefixes.
func (r *Resolver) IsSupported(s string) bool {
	for _, l := range r.supported {
		if l == s {
			return true
		}
	}
	return false
}

// Match maps a tag such as "ar-EG" to a supported locale.
func (r *Resolver) Match(s string) (string, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := r.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return r.supported[idx], true
}

// FromAcceptLanguage picks the best supported locale for an Accept-Language header.
func (r *Resolver) FromAcceptLanguage(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return r.supported[idx], true
}

// Resolve picks the locale of a request without a locale path prefix: the "locale" query
// parameter, then Accept-Language, then the default.
func (r *Resolver) Resolve(req *http.Request) string {
	if q := req.URL.Query().Get("locale"); q != "" {
		if l, ok := r.Match(q); ok {
			return l
		}
	}
	if l, ok := r.FromAcceptLanguage(req.Header.Get("Accept-Language")); ok {
		return l
	}
	return r.Default()
}

type ctxKey struct{}

func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// FromContext returns the request locale, or DefaultLocale outside a request.
func FromContext(ctx context.Context) string {
	if l, ok := ctx.Value(ctxKey{}).(string); ok && l != "" {
		return l
	}
	return DefaultLocale
}
