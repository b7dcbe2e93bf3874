// Package locale loads the page translations and resolves a localizer per
// request from the lang cookie or the Accept-Language header.
package locale

import (
	"io/fs"
	"strings"

	"github.com/ifsp/cadastro/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const contextKey = "localizer"

var (
	DefaultLanguage = language.BrazilianPortuguese
	bundle          *i18n.Bundle
)

// InitLocalizer parses every file under translation/ in fsys.
func InitLocalizer(fsys fs.FS) error {
	b := i18n.NewBundle(DefaultLanguage)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(fsys, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = b.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return err
	}
	bundle = b
	return nil
}

// NewLocalizer prefers the given languages, falling back to pt-BR.
func NewLocalizer(langs ...string) *i18n.Localizer {
	if bundle == nil {
		return nil
	}
	return i18n.NewLocalizer(bundle, langs...)
}

func createTemplateData(params []string, separator ...string) map[string]any {
	sep := "=="
	if len(separator) > 0 {
		sep = separator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// I18n localizes key. Params are "name==value" pairs for the message
// template. A missing localizer or message yields the key itself.
func I18n(localizer *i18n.Localizer, key string, params ...string) string {
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

func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		}
		c.Set(contextKey, NewLocalizer(lang, c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// FromContext returns the request localizer installed by LocalizerMiddleware.
func FromContext(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(contextKey); ok {
		if loc, ok := v.(*i18n.Localizer); ok {
			return loc
		}
	}
	return NewLocalizer()
}
