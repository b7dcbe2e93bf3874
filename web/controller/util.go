package controller

import (
	"net/http"

	"github.com/ifsp/cadastro/config"
	"github.com/ifsp/cadastro/logger"
	"github.com/ifsp/cadastro/web/entity"
	"github.com/ifsp/cadastro/web/locale"

	"github.com/gin-gonic/gin"
)

// jsonObj sends obj in the Msg envelope, or the error message on failure.
func jsonObj(c *gin.Context, obj any, err error) {
	m := entity.Msg{Obj: obj}
	if err == nil {
		m.Success = true
		c.JSON(http.StatusOK, m)
		return
	}
	logger.Warning("api request failed:", err)
	m.Msg = err.Error()
	m.Obj = nil
	c.JSON(http.StatusInternalServerError, m)
}

// html renders a page template with status 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders a page template. title is a translation message ID.
func htmlStatus(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	loc := locale.FromContext(c)
	data["title"] = title
	data["loc"] = loc
	data["lang"] = locale.I18n(loc, "lang")
	data["request_uri"] = c.Request.RequestURI
	if errs, _ := data["errors"].(map[string]string); errs == nil {
		data["errors"] = map[string]string{}
	}
	c.HTML(status, name, getContext(data))
}

// getContext adds the version and other shared values to h.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}
