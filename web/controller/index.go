package controller

import (
	"net/http"

	"github.com/ifsp/cadastro/database/model"
	"github.com/ifsp/cadastro/database/repository"
	"github.com/ifsp/cadastro/web/entity"
	"github.com/ifsp/cadastro/web/service"
	"github.com/ifsp/cadastro/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController serves the user registration form and the user/role lists.
type IndexController struct {
	store        *repository.Store
	registration service.RegistrationService
	listing      *service.ListingService
}

func NewIndexController(g *gin.RouterGroup, store *repository.Store) *IndexController {
	a := &IndexController{
		store:   store,
		listing: service.NewListingService(store),
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.POST("/", a.register)
}

func (a *IndexController) index(c *gin.Context) {
	a.render(c, entity.NameForm{Role: model.RoleChoices[0].Value}, nil)
}

// register runs the find-or-create workflow and redirects so a refresh does
// not resubmit the form.
func (a *IndexController) register(c *gin.Context) {
	var form entity.NameForm
	if err := c.ShouldBind(&form); err != nil {
		a.render(c, form, entity.FieldErrors(err))
		return
	}

	rc := service.NewRegistrationContext(c.Request.Context(), a.store, session.GetState(c))
	if _, err := a.registration.RegisterUser(rc, form); err != nil {
		ServerError(c, err)
		return
	}
	if err := session.SaveState(c, rc.Session); err != nil {
		ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *IndexController) render(c *gin.Context, form entity.NameForm, errs map[string]string) {
	view, err := a.listing.Index(c.Request.Context())
	if err != nil {
		ServerError(c, err)
		return
	}

	st := session.GetState(c)
	name := st.Name
	if st.Anonymous() {
		name = I18nWeb(c, "stranger")
	}

	html(c, "index.html", "pages.index.title", gin.H{
		"form":        form,
		"errors":      errs,
		"roleChoices": model.RoleChoices,
		"name":        name,
		"known":       st.Known,
		"users":       view.Users,
		"userCount":   view.UserCount,
		"roles":       view.Roles,
		"roleCount":   view.RoleCount,
	})
}
