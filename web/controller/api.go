package controller

import (
	"github.com/ifsp/cadastro/database/repository"
	"github.com/ifsp/cadastro/web/service"
	"github.com/ifsp/cadastro/web/session"

	"github.com/gin-gonic/gin"
)

// Resumo is the read-only JSON summary of everything registered so far.
type Resumo struct {
	Session     session.State            `json:"session"`
	Index       *service.IndexView       `json:"index"`
	Disciplinas *service.DisciplinasView `json:"disciplinas"`
}

// APIController exposes the JSON endpoints under /api.
type APIController struct {
	listing *service.ListingService
}

func NewAPIController(g *gin.RouterGroup, store *repository.Store) *APIController {
	a := &APIController{listing: service.NewListingService(store)}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	api := g.Group("/api")
	api.GET("/resumo", a.resumo)
}

func (a *APIController) resumo(c *gin.Context) {
	ctx := c.Request.Context()
	r := Resumo{Session: session.GetState(c)}

	var err error
	if r.Index, err = a.listing.Index(ctx); err != nil {
		jsonObj(c, nil, err)
		return
	}
	if r.Disciplinas, err = a.listing.Disciplinas(ctx); err != nil {
		jsonObj(c, nil, err)
		return
	}
	jsonObj(c, r, nil)
}
