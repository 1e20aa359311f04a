// Package middleware implements the two-phase interceptor chain every
// page request runs through. Interceptors execute their start hooks in
// registration order and their response hooks in reverse, so the chain
// registered as (Renderer, CurrentUser, NotFound) responds as
// NotFound -> CurrentUser -> Renderer: the fallback page is attached,
// user data is injected, and only then are bytes produced.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/logger"
)

// Handler produces a response for a routed request. Handlers never
// write to the connection themselves.
type Handler func(c *gin.Context) (*Response, error)

// Interceptor is a chain member. Both hooks are optional; implement
// Starter, Responder, or both.
type Interceptor interface{}

// Starter runs before the route handler. Returning a non-nil response
// short-circuits the chain: the handler and the remaining start hooks
// are skipped.
type Starter interface {
	Start(c *gin.Context) (*Response, error)
}

// Responder runs after a response exists, in reverse registration
// order, and may replace or mutate it. It is only invoked for
// interceptors whose start phase ran without error.
type Responder interface {
	Respond(c *gin.Context, resp *Response) (*Response, error)
}

type Chain struct {
	interceptors []Interceptor
}

func NewChain(interceptors ...Interceptor) *Chain {
	return &Chain{interceptors: interceptors}
}

// Handle wraps a handler into a gin route. This is a linear onion, not
// a tree: interceptors cannot re-enter the chain.
func (ch *Chain) Handle(h Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch.run(c, h).write(c)
	}
}

func (ch *Chain) run(c *gin.Context, h Handler) *Response {
	var resp *Response
	entered := 0

	for i, ic := range ch.interceptors {
		s, ok := ic.(Starter)
		if !ok {
			entered = i + 1
			continue
		}

		r, err := s.Start(c)
		if err != nil {
			// The failing interceptor does not enter; everything
			// before it still gets its response phase.
			resp = errorResponse(c, err)
			break
		}
		entered = i + 1
		if r != nil {
			resp = r
			break
		}
	}

	if resp == nil {
		r, err := h(c)
		switch {
		case err != nil:
			resp = errorResponse(c, err)
		case r != nil:
			resp = r
		default:
			resp = Status(http.StatusOK)
		}
	}

	for i := entered - 1; i >= 0; i-- {
		rd, ok := ch.interceptors[i].(Responder)
		if !ok {
			continue
		}

		r, err := rd.Respond(c, resp)
		if err != nil {
			// The half-built response is discarded, not partially
			// emitted. Earlier interceptors still respond.
			resp = errorResponse(c, err)
			continue
		}
		if r != nil {
			resp = r
		}
	}

	return resp
}

// errorResponse maps a handler or interceptor error to a minimal
// client response. Internal detail stays in the log. Not-found errors
// produce a bodyless 404 so the fallback page interceptor can dress it.
func errorResponse(c *gin.Context, err error) *Response {
	status := httperr.StatusOf(err)

	log := logger.Error
	if status < http.StatusInternalServerError {
		log = logger.Warn
	}
	log("request failed", map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"status": status,
		"error":  err.Error(),
	})

	resp := Status(status)
	var herr *httperr.Error
	if status >= http.StatusInternalServerError || !errors.As(err, &herr) || herr.Message == "" {
		return resp
	}

	if status == http.StatusNotFound {
		// Bodyless so the fallback page interceptor dresses it; the
		// message rides along for that page to show.
		resp.Message = herr.Message
	} else {
		resp.Body = []byte(herr.Message)
	}
	return resp
}
