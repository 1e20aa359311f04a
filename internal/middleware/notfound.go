package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/render"
)

// NotFound dresses terminal 404s with the site's not-found page. A 404
// that already carries a template or a body came from a handler that
// chose its own presentation and passes through untouched.
type NotFound struct {
	TemplateName string
}

func (m NotFound) Respond(c *gin.Context, resp *Response) (*Response, error) {
	if resp == nil || resp.Status != http.StatusNotFound {
		return nil, nil
	}
	if resp.Template != nil || len(resp.Body) > 0 {
		return nil, nil
	}

	ctx := render.Context{}
	if resp.Message != "" {
		ctx["message"] = resp.Message
	}
	resp.Template = render.NewTemplate(m.TemplateName, ctx)
	return resp, nil
}
