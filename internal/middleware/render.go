package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/render"
)

// Renderer performs the deferred render. It runs last in the response
// phase, after every other interceptor has enriched the context.
type Renderer struct {
	Engine *render.Engine
}

func (m *Renderer) Respond(c *gin.Context, resp *Response) (*Response, error) {
	if resp == nil || resp.Template == nil {
		return nil, nil
	}

	body, err := m.Engine.Render(resp.Template.Name, resp.Template.Context)
	if err != nil {
		return nil, httperr.Internal("render page", err)
	}

	resp.Body = body
	resp.ContentType = "text/html; charset=utf-8"
	resp.Template = nil
	return resp, nil
}
