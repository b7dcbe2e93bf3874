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

// CadastroController serves the /cadastro pages.
type CadastroController struct {
	store        *repository.Store
	registration service.RegistrationService
	listing      *service.ListingService
}

func NewCadastroController(g *gin.RouterGroup, store *repository.Store) *CadastroController {
	a := &CadastroController{
		store:   store,
		listing: service.NewListingService(store),
	}
	a.initRouter(g)
	return a
}

func (a *CadastroController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/cadastro")

	g.GET("/disciplinas", a.disciplinas)
	g.POST("/disciplinas", a.addDisciplina)

	// Linked from the navbar but not implemented yet.
	g.GET("/aluno", NotFound)
	g.GET("/professores", NotFound)
}

func (a *CadastroController) disciplinas(c *gin.Context) {
	a.render(c, entity.DisciplinaForm{Semestre: string(model.Semestres[0])}, nil)
}

func (a *CadastroController) addDisciplina(c *gin.Context) {
	var form entity.DisciplinaForm
	if err := c.ShouldBind(&form); err != nil {
		a.render(c, form, entity.FieldErrors(err))
		return
	}

	rc := service.NewRegistrationContext(c.Request.Context(), a.store, session.GetState(c))
	if _, err := a.registration.RegisterDisciplina(rc, form); err != nil {
		ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cadastro/disciplinas")
}

func (a *CadastroController) render(c *gin.Context, form entity.DisciplinaForm, errs map[string]string) {
	view, err := a.listing.Disciplinas(c.Request.Context())
	if err != nil {
		ServerError(c, err)
		return
	}
	html(c, "disciplinas.html", "pages.disciplinas.title", gin.H{
		"form":        form,
		"errors":      errs,
		"semestres":   model.Semestres,
		"disciplinas": view.Disciplinas,
		"count":       view.Count,
	})
}
