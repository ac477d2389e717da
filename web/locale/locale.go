// Package locale loads the TOML translation bundles and picks a localizer per request.
package locale

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/healthai/riskpanel/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	localizerKey = "localizer"
	langCookie   = "lang"
)

var (
	bundleMu   sync.RWMutex
	i18nBundle *i18n.Bundle
)

// InitLocalizer parses every file under translation/ in i18nFS into the shared bundle.
func InitLocalizer(i18nFS fs.FS) error {
	b := i18n.NewBundle(language.MustParse("en-US"))
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, b); err != nil {
		return err
	}

	bundleMu.Lock()
	i18nBundle = b
	bundleMu.Unlock()
	return nil
}

func parseTranslationFiles(i18nFS fs.FS, b *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(i18nFS, path)
		if err != nil {
			return err
		}
		_, err = b.ParseMessageFileBytes(data, path)
		return err
	})
}

func createTemplateData(params []string, separator ...string) map[string]any {
	sep := "=="
	if len(separator) > 0 {
		sep = separator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) != 2 {
			continue
		}
		templateData[parts[0]] = parts[1]
	}
	return templateData
}

// Localize renders key with localizer. Params are "name==value" pairs.
// The key itself is returned when the localizer is missing or has no such message.
func Localize(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// NewLocalizer returns a localizer for the given languages, nil before InitLocalizer.
func NewLocalizer(langs ...string) *i18n.Localizer {
	bundleMu.RLock()
	defer bundleMu.RUnlock()
	if i18nBundle == nil {
		return nil
	}
	return i18n.NewLocalizer(i18nBundle, langs...)
}

// LocalizerMiddleware stores a localizer chosen from the "lang" cookie or the
// Accept-Language header in the gin context.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if cookie, err := c.Request.Cookie(langCookie); err == nil {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		c.Set(localizerKey, NewLocalizer(lang))
		c.Next()
	}
}

// I18n localizes key for the request handled by c.
func I18n(c *gin.Context, key string, params ...string) string {
	l, _ := c.Get(localizerKey)
	localizer, _ := l.(*i18n.Localizer)
	return Localize(localizer, key, params...)
}
