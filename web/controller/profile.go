package controller

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ProfileController renders the path parameters back with the server time.
// Nothing is looked up or stored.
type ProfileController struct {
	now func() time.Time
}

func NewProfileController(g *gin.RouterGroup) *ProfileController {
	a := &ProfileController{now: time.Now}
	a.initRouter(g)
	return a
}

func (a *ProfileController) initRouter(g *gin.RouterGroup) {
	g.GET("/user/:name/:prontuario/:institution", a.profile)
}

func (a *ProfileController) profile(c *gin.Context) {
	html(c, "user.html", "pages.user.title", gin.H{
		"name":         c.Param("name"),
		"prontuario":   c.Param("prontuario"),
		"institution":  c.Param("institution"),
		"current_time": a.now(),
	})
}
