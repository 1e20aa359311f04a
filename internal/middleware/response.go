package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/render"
)

// Response is the in-flight result of a request. Nothing is written to
// the wire until the whole chain has finished, which is what lets the
// response phase still reshape it.
type Response struct {
	Status      int
	Location    string
	ContentType string
	Body        []byte

	// Template defers rendering to the render interceptor. At most one
	// template is attached per request; it is cleared once consumed.
	Template *render.Template

	// Message is optional client-visible text for error pages, picked
	// up when a fallback page is attached.
	Message string
}

// Page defers rendering of the named template against ctx.
func Page(name string, ctx render.Context) *Response {
	return &Response{
		Status:   http.StatusOK,
		Template: render.NewTemplate(name, ctx),
	}
}

func Redirect(location string) *Response {
	return &Response{Status: http.StatusFound, Location: location}
}

func Status(code int) *Response {
	return &Response{Status: code}
}

func (r *Response) write(c *gin.Context) {
	if r.Location != "" {
		c.Redirect(r.Status, r.Location)
		return
	}
	if len(r.Body) > 0 {
		ct := r.ContentType
		if ct == "" {
			ct = "text/plain; charset=utf-8"
		}
		c.Data(r.Status, ct, r.Body)
		return
	}
	c.Status(r.Status)
}
