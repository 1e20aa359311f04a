// Package site holds the page handlers. Handlers assemble a render
// context and name a template; rendering itself is deferred to the
// interceptor chain.
package site

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/cache"
	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/markdown"
	"github.com/Scetch/potw/internal/middleware"
	"github.com/Scetch/potw/internal/render"
	"github.com/Scetch/potw/internal/store"
)

type Handler struct {
	store       *store.Store
	leaderboard *cache.Leaderboard
}

func New(st *store.Store, leaderboard *cache.Leaderboard) *Handler {
	return &Handler{store: st, leaderboard: leaderboard}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, chain, adminChain *middleware.Chain) {
	r.GET("/", chain.Handle(h.Index))
	r.GET("/problems/", chain.Handle(h.Problems))
	r.GET("/problems/:id/", chain.Handle(h.Problem))
	r.POST("/problems/:id/solutions", chain.Handle(h.SubmitSolution))
	r.GET("/leaderboard/", chain.Handle(h.Leaderboard))
	r.GET("/user/:sid/", chain.Handle(h.UserProfile))

	admin := r.Group("/admin")
	admin.GET("/", adminChain.Handle(h.AdminIndex))
	admin.GET("/problems/create", adminChain.Handle(h.AdminProblemCreate))
	admin.POST("/problems/create", adminChain.Handle(h.AdminProblemCreateForm))
	admin.GET("/problems/:id/edit", adminChain.Handle(h.AdminProblemEdit))
	admin.POST("/problems/:id/edit", adminChain.Handle(h.AdminProblemEditForm))
	admin.GET("/problems/:id/delete", adminChain.Handle(h.AdminProblemDelete))
	admin.GET("/problems/:id/delete/confirm", adminChain.Handle(h.AdminProblemDeleteConfirm))
	admin.GET("/languages/create", adminChain.Handle(h.AdminLanguageCreate))
	admin.POST("/languages/create", adminChain.Handle(h.AdminLanguageCreateForm))
	admin.GET("/languages/:id/edit", adminChain.Handle(h.AdminLanguageEdit))
	admin.POST("/languages/:id/edit", adminChain.Handle(h.AdminLanguageEditForm))
	admin.GET("/languages/:id/delete", adminChain.Handle(h.AdminLanguageDelete))
	admin.GET("/languages/:id/delete/confirm", adminChain.Handle(h.AdminLanguageDeleteConfirm))

	r.NoRoute(chain.Handle(notFound))
}

// Index shows the newest problem with its description rendered from
// markdown.
func (h *Handler) Index(c *gin.Context) (*middleware.Response, error) {
	ctx := render.Context{}

	problem, err := h.store.LatestProblem(c.Request.Context())
	switch {
	case err == nil:
		ctx["problem"] = problemContext(problem, true)
	case errors.Is(err, store.ErrNotFound):
		// No problems yet; the page renders without one.
	default:
		return nil, httperr.Internal("load latest problem", err)
	}

	return middleware.Page("index.html", ctx), nil
}

// UserProfile is the public page for a handle, listing the user's
// solutions.
func (h *Handler) UserProfile(c *gin.Context) (*middleware.Response, error) {
	u, err := h.store.UserBySID(c.Request.Context(), c.Param("sid"))
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("User not found.")
	}
	if err != nil {
		return nil, httperr.Internal("load user", err)
	}

	solutions, err := h.store.SolutionsByUser(c.Request.Context(), u.ID)
	if err != nil {
		return nil, httperr.Internal("load solutions", err)
	}

	userCtx := userContext(u)
	list := make([]render.Context, 0, len(solutions))
	for _, s := range solutions {
		list = append(list, render.Context{
			"id":       s.ID,
			"name":     s.Problem,
			"language": s.Language,
		})
	}
	userCtx["solutions"] = list

	return middleware.Page("user.html", render.Context{"user": userCtx}), nil
}

func notFound(c *gin.Context) (*middleware.Response, error) {
	return middleware.Status(404), nil
}

func userContext(u store.User) render.Context {
	return render.Context{
		"id":    u.ID,
		"sid":   u.SID,
		"admin": u.Admin,
	}
}

// problemContext assembles a problem for templates. renderDesc runs the
// description through markdown for display pages; edit forms want the
// raw text.
func problemContext(p store.Problem, renderDesc bool) render.Context {
	ctx := render.Context{
		"id":   p.ID,
		"name": p.Name,
	}
	if renderDesc {
		ctx["description"] = markdown.Render(p.Description)
	} else {
		ctx["description"] = p.Description
	}
	return ctx
}

func languageContext(l store.Language) render.Context {
	return render.Context{
		"id":   l.ID,
		"name": l.Name,
	}
}
