// Package controller provides the HTTP handlers of the registration app: the
// user and discipline forms, the profile page, the JSON summary and the error
// pages.
package controller

import (
	"net/http"

	"github.com/ifsp/cadastro/logger"
	"github.com/ifsp/cadastro/web/locale"

	"github.com/gin-gonic/gin"
)

// I18nWeb localizes a message for the language negotiated for this request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18n(locale.FromContext(c), name, params...)
}

// NotFound renders the 404 page and stops the handler chain.
func NotFound(c *gin.Context) {
	htmlStatus(c, http.StatusNotFound, "404.html", "pages.notFound.title", nil)
	c.Abort()
}

// ServerError logs err and renders the 500 page.
func ServerError(c *gin.Context, err error) {
	logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	htmlStatus(c, http.StatusInternalServerError, "500.html", "pages.serverError.title", nil)
	c.Abort()
}
