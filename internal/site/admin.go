package site

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/middleware"
	"github.com/Scetch/potw/internal/render"
	"github.com/Scetch/potw/internal/store"
)

// AdminIndex lists everything the panel manages.
func (h *Handler) AdminIndex(c *gin.Context) (*middleware.Response, error) {
	ctx := c.Request.Context()

	users, err := h.store.Users(ctx)
	if err != nil {
		return nil, httperr.Internal("load users", err)
	}
	problems, err := h.store.Problems(ctx)
	if err != nil {
		return nil, httperr.Internal("load problems", err)
	}
	languages, err := h.store.Languages(ctx)
	if err != nil {
		return nil, httperr.Internal("load languages", err)
	}

	userList := make([]render.Context, 0, len(users))
	for _, u := range users {
		userList = append(userList, userContext(u))
	}
	problemList := make([]render.Context, 0, len(problems))
	for _, p := range problems {
		problemList = append(problemList, problemContext(p, false))
	}
	languageList := make([]render.Context, 0, len(languages))
	for _, l := range languages {
		languageList = append(languageList, languageContext(l))
	}

	return middleware.Page("admin/index.html", render.Context{
		"users":     userList,
		"problems":  problemList,
		"languages": languageList,
	}), nil
}

func (h *Handler) AdminProblemCreate(c *gin.Context) (*middleware.Response, error) {
	return middleware.Page("admin/problem.html", nil), nil
}

func (h *Handler) AdminProblemCreateForm(c *gin.Context) (*middleware.Response, error) {
	name, description, err := problemForm(c)
	if err != nil {
		return nil, err
	}

	if _, err := h.store.CreateProblem(c.Request.Context(), name, description); err != nil {
		return nil, httperr.Internal("create problem", err)
	}
	return middleware.Redirect("/admin/"), nil
}

func (h *Handler) AdminProblemEdit(c *gin.Context) (*middleware.Response, error) {
	problem, err := h.adminProblem(c)
	if err != nil {
		return nil, err
	}

	return middleware.Page("admin/problem.html", render.Context{
		"problem": problemContext(problem, false),
	}), nil
}

func (h *Handler) AdminProblemEditForm(c *gin.Context) (*middleware.Response, error) {
	problem, err := h.adminProblem(c)
	if err != nil {
		return nil, err
	}

	name, description, err := problemForm(c)
	if err != nil {
		return nil, err
	}

	if err := h.store.UpdateProblem(c.Request.Context(), problem.ID, name, description); err != nil {
		return nil, httperr.Internal("update problem", err)
	}
	return middleware.Redirect("/admin/"), nil
}

func (h *Handler) AdminProblemDelete(c *gin.Context) (*middleware.Response, error) {
	problem, err := h.adminProblem(c)
	if err != nil {
		return nil, err
	}

	return middleware.Page("confirm.html", render.Context{
		"confirmation": fmt.Sprintf("Are you sure you want to delete %s?", problem.Name),
		"url":          fmt.Sprintf("/admin/problems/%d/delete/confirm", problem.ID),
	}), nil
}

func (h *Handler) AdminProblemDeleteConfirm(c *gin.Context) (*middleware.Response, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteProblem(c.Request.Context(), id); err != nil {
		return nil, httperr.Internal("delete problem", err)
	}
	return middleware.Redirect("/admin/"), nil
}

func (h *Handler) AdminLanguageCreate(c *gin.Context) (*middleware.Response, error) {
	return middleware.Page("admin/language.html", nil), nil
}

func (h *Handler) AdminLanguageCreateForm(c *gin.Context) (*middleware.Response, error) {
	name, err := languageForm(c)
	if err != nil {
		return nil, err
	}

	if _, err := h.store.CreateLanguage(c.Request.Context(), name); err != nil {
		return nil, httperr.Internal("create language", err)
	}
	return middleware.Redirect("/admin/"), nil
}

func (h *Handler) AdminLanguageEdit(c *gin.Context) (*middleware.Response, error) {
	language, err := h.adminLanguage(c)
	if err != nil {
		return nil, err
	}

	return middleware.Page("admin/language.html", render.Context{
		"language": languageContext(language),
	}), nil
}

func (h *Handler) AdminLanguageEditForm(c *gin.Context) (*middleware.Response, error) {
	language, err := h.adminLanguage(c)
	if err != nil {
		return nil, err
	}

	name, err := languageForm(c)
	if err != nil {
		return nil, err
	}

	if err := h.store.UpdateLanguage(c.Request.Context(), language.ID, name); err != nil {
		return nil, httperr.Internal("update language", err)
	}
	return middleware.Redirect("/admin/"), nil
}

func (h *Handler) AdminLanguageDelete(c *gin.Context) (*middleware.Response, error) {
	language, err := h.adminLanguage(c)
	if err != nil {
		return nil, err
	}

	return middleware.Page("confirm.html", render.Context{
		"confirmation": fmt.Sprintf("Are you sure you want to delete %s?", language.Name),
		"url":          fmt.Sprintf("/admin/languages/%d/delete/confirm", language.ID),
	}), nil
}

func (h *Handler) AdminLanguageDeleteConfirm(c *gin.Context) (*middleware.Response, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteLanguage(c.Request.Context(), id); err != nil {
		return nil, httperr.Internal("delete language", err)
	}
	return middleware.Redirect("/admin/"), nil
}

func (h *Handler) adminProblem(c *gin.Context) (store.Problem, error) {
	id, err := pathID(c)
	if err != nil {
		return store.Problem{}, err
	}

	problem, err := h.store.ProblemByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Problem{}, httperr.NotFound("No problem found.")
	}
	if err != nil {
		return store.Problem{}, httperr.Internal("load problem", err)
	}
	return problem, nil
}

func (h *Handler) adminLanguage(c *gin.Context) (store.Language, error) {
	id, err := pathID(c)
	if err != nil {
		return store.Language{}, err
	}

	language, err := h.store.LanguageByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Language{}, httperr.NotFound("No language found.")
	}
	if err != nil {
		return store.Language{}, httperr.Internal("load language", err)
	}
	return language, nil
}

func problemForm(c *gin.Context) (name, description string, err error) {
	name = strings.TrimSpace(c.PostForm("name"))
	description = c.PostForm("description")
	if name == "" {
		return "", "", httperr.BadRequest("Problem name is required.")
	}
	return name, description, nil
}

func languageForm(c *gin.Context) (string, error) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		return "", httperr.BadRequest("Language name is required.")
	}
	return name, nil
}
