package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, []string{"ar", "en"}, c.Locales())

	en := c.Export("en", []string{"layout", "missing"})
	assert.Equal(t, "Contact Us", en["layout"]["contact_us"])
	assert.Empty(t, en["missing"])
	assert.NotNil(t, en["missing"])

	ar := c.Export("ar", []string{"layout"})
	assert.Equal(t, "اتصل بنا", ar["layout"]["contact_us"])
	assert.Len(t, ar["layout"], len(en["layout"]), "both locales carry the same keys")

	assert.Equal(t, "Home", c.All("en")["layout.home"])
}

func TestExportReturnsCopies(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	c.Export("en", []string{"layout"})["layout"]["home"] = "changed"
	assert.Equal(t, "Home", c.T("en", "en", "layout.home"))
}

func TestLoadFSFlattensNestedKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"en/auth.yml":   {Data: []byte("failed: Wrong credentials\nthrottle:\n  wait: Too many attempts\n")},
		"fr/auth.yaml":  {Data: []byte("failed: Identifiants incorrects\n")},
		"en/readme.txt": {Data: []byte("ignored")},
	}
	c, err := LoadFS(fsys)
	require.NoError(t, err)

	assert.Equal(t, "Too many attempts", c.T("en", "en", "auth.throttle.wait"))
	assert.Equal(t, "Identifiants incorrects", c.T("fr", "en", "auth.failed"))
	assert.Equal(t, "Too many attempts", c.T("fr", "en", "auth.throttle.wait"), "falls back")
	assert.Equal(t, "auth.unknown", c.T("fr", "en", "auth.unknown"))
}

func TestLoadFSRejectsRootFiles(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"layout.yaml": {Data: []byte("a: b")}})
	assert.Error(t, err)
}

func TestResolver(t *testing.T) {
	r := NewResolver("en", []string{"ar", "en", " "})
	assert.Equal(t, []string{"en", "ar"}, r.Supported())
	assert.Equal(t, "en", r.Default())

	assert.True(t, r.IsSupported("ar"))
	assert.False(t, r.IsSupported("ar-EG"))

	l, ok := r.Match("ar-EG")
	assert.True(t, ok)
	assert.Equal(t, "ar", l)

	_, ok = r.Match("ja")
	assert.False(t, ok)

	l, ok = r.FromAcceptLanguage("fr-FR,fr;q=0.9,ar;q=0.8")
	assert.True(t, ok)
	assert.Equal(t, "ar", l)

	_, ok = r.FromAcceptLanguage("")
	assert.False(t, ok)
}

func TestResolveOrder(t *testing.T) {
	r := NewResolver("en", []string{"ar"})

	req := httptest.NewRequest(http.MethodGet, "/api/home?locale=ar", nil)
	req.Header.Set("Accept-Language", "en")
	assert.Equal(t, "ar", r.Resolve(req))

	req = httptest.NewRequest(http.MethodGet, "/api/home?locale=zz", nil)
	req.Header.Set("Accept-Language", "ar-SA")
	assert.Equal(t, "ar", r.Resolve(req))

	req = httptest.NewRequest(http.MethodGet, "/api/home", nil)
	assert.Equal(t, "en", r.Resolve(req))
}

func TestContextAndDirection(t *testing.T) {
	assert.Equal(t, DefaultLocale, FromContext(context.Background()))
	assert.Equal(t, "ar", FromContext(WithLocale(context.Background(), "ar")))

	assert.Equal(t, "rtl", Direction("ar"))
	assert.Equal(t, "ltr", Direction("en"))
}
