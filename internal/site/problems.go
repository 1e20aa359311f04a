package site

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/middleware"
	"github.com/Scetch/potw/internal/render"
	"github.com/Scetch/potw/internal/store"
)

func (h *Handler) Problems(c *gin.Context) (*middleware.Response, error) {
	problems, err := h.store.Problems(c.Request.Context())
	if err != nil {
		return nil, httperr.Internal("load problems", err)
	}

	list := make([]render.Context, 0, len(problems))
	for _, p := range problems {
		list = append(list, problemContext(p, false))
	}

	return middleware.Page("problems/index.html", render.Context{"problems": list}), nil
}

func (h *Handler) Problem(c *gin.Context) (*middleware.Response, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}

	problem, err := h.store.ProblemByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("No problem found.")
	}
	if err != nil {
		return nil, httperr.Internal("load problem", err)
	}

	languages, err := h.store.Languages(c.Request.Context())
	if err != nil {
		return nil, httperr.Internal("load languages", err)
	}

	list := make([]render.Context, 0, len(languages))
	for _, l := range languages {
		list = append(list, languageContext(l))
	}

	return middleware.Page("problems/problem.html", render.Context{
		"problem":   problemContext(problem, true),
		"languages": list,
	}), nil
}

// SubmitSolution records a solution for the logged-in user and drops
// the cached leaderboard. Anonymous submitters are sent to login.
func (h *Handler) SubmitSolution(c *gin.Context) (*middleware.Response, error) {
	user, ok := middleware.CurrentUserFrom(c)
	if !ok {
		return middleware.Redirect("/login"), nil
	}

	problemID, err := pathID(c)
	if err != nil {
		return nil, err
	}

	languageID, err := strconv.ParseInt(c.PostForm("language"), 10, 64)
	if err != nil {
		return nil, httperr.BadRequest("Invalid language.")
	}
	code := strings.TrimSpace(c.PostForm("code"))
	if code == "" {
		return nil, httperr.BadRequest("Solution code is required.")
	}

	ctx := c.Request.Context()

	problem, err := h.store.ProblemByID(ctx, problemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("No problem found.")
	}
	if err != nil {
		return nil, httperr.Internal("load problem", err)
	}

	if _, err := h.store.LanguageByID(ctx, languageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.BadRequest("Unknown language.")
		}
		return nil, httperr.Internal("load language", err)
	}

	if _, err := h.store.CreateSolution(ctx, problem.ID, user.ID, languageID, code); err != nil {
		return nil, httperr.Internal("create solution", err)
	}

	h.leaderboard.Invalidate(ctx)

	return middleware.Redirect(fmt.Sprintf("/problems/%d/", problem.ID)), nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httperr.NotFound("Not found.")
	}
	return id, nil
}
