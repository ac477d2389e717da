package locale

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledTranslations(t *testing.T) {
	require.NoError(t, InitLocalizer(os.DirFS("..")))

	en := NewLocalizer("en-US")
	assert.Equal(t, "Invalid username or password.", Localize(en, "pages.login.toasts.wrongUsernameOrPassword"))
	assert.Equal(t, "Password must be at least 6 characters", Localize(en, "pages.register.toasts.shortPassword", "Min==6"))

	ru := NewLocalizer("ru-RU")
	assert.Equal(t, "Пароли не совпадают", Localize(ru, "pages.register.toasts.passwordMismatch"))

	// unknown languages fall back to english
	de := NewLocalizer("de")
	assert.Equal(t, "Failed", Localize(de, "fail"))
}

func TestLocalizeMissing(t *testing.T) {
	assert.Equal(t, "some.key", Localize(nil, "some.key"))

	fsys := fstest.MapFS{
		"translation/translate.en_US.toml": {Data: []byte("\"hello\" = \"Hello {{ .Name }}\"\n")},
	}
	require.NoError(t, InitLocalizer(fsys))
	l := NewLocalizer("en")
	assert.Equal(t, "Hello Bob", Localize(l, "hello", "Name==Bob", "broken"))
	assert.Equal(t, "missing.key", Localize(l, "missing.key"))
}

func TestLocalizerMiddleware(t *testing.T) {
	require.NoError(t, InitLocalizer(os.DirFS("..")))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LocalizerMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, I18n(c, "pages.login.toasts.emptyPassword"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Введите пароль", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru-RU")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "en-US"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Password is required", w.Body.String())
}
