package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInterceptor struct {
	name string
	log  *[]string

	startResp *Response
	startErr  error

	respondResp *Response
	respondErr  error
}

func (r *recordingInterceptor) Start(c *gin.Context) (*Response, error) {
	*r.log = append(*r.log, r.name+".start")
	return r.startResp, r.startErr
}

func (r *recordingInterceptor) Respond(c *gin.Context, resp *Response) (*Response, error) {
	*r.log = append(*r.log, r.name+".respond")
	if r.respondResp != nil {
		return r.respondResp, r.respondErr
	}
	return nil, r.respondErr
}

// respondOnly has no start hook at all.
type respondOnly struct {
	log *[]string
}

func (r *respondOnly) Respond(c *gin.Context, resp *Response) (*Response, error) {
	*r.log = append(*r.log, "respondOnly.respond")
	return nil, nil
}

func serve(t *testing.T, ch *Chain, h Handler) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", ch.Handle(h))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestChainOrdering(t *testing.T) {
	var log []string
	a := &recordingInterceptor{name: "a", log: &log}
	b := &recordingInterceptor{name: "b", log: &log}

	w := serve(t, NewChain(a, b), func(c *gin.Context) (*Response, error) {
		log = append(log, "handler")
		return Status(http.StatusOK), nil
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{
		"a.start", "b.start", "handler", "b.respond", "a.respond",
	}, log)
}

func TestChainShortCircuitSkipsHandlerAndLaterStarts(t *testing.T) {
	var log []string
	a := &recordingInterceptor{name: "a", log: &log}
	b := &recordingInterceptor{name: "b", log: &log, startResp: Redirect("/")}
	c := &recordingInterceptor{name: "c", log: &log}

	w := serve(t, NewChain(a, b, c), func(*gin.Context) (*Response, error) {
		log = append(log, "handler")
		return nil, nil
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	// The short-circuiting interceptor entered, so it responds too.
	assert.Equal(t, []string{"a.start", "b.start", "b.respond", "a.respond"}, log)
}

func TestChainStartErrorSkipsOwnRespond(t *testing.T) {
	var log []string
	a := &recordingInterceptor{name: "a", log: &log}
	b := &recordingInterceptor{name: "b", log: &log, startErr: errors.New("boom")}
	c := &recordingInterceptor{name: "c", log: &log}

	w := serve(t, NewChain(a, b, c), func(*gin.Context) (*Response, error) {
		log = append(log, "handler")
		return nil, nil
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// b errored, so only a gets a response phase.
	assert.Equal(t, []string{"a.start", "b.start", "a.respond"}, log)
}

func TestChainRespondErrorReplacesResponse(t *testing.T) {
	var log []string
	a := &recordingInterceptor{name: "a", log: &log}
	b := &recordingInterceptor{name: "b", log: &log, respondErr: errors.New("boom")}

	w := serve(t, NewChain(a, b), func(*gin.Context) (*Response, error) {
		return &Response{Status: http.StatusOK, Body: []byte("page")}, nil
	})

	// The half-built response is discarded and a still responds.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []string{"a.start", "b.start", "b.respond", "a.respond"}, log)
}

func TestChainHandlerErrorStatus(t *testing.T) {
	var log []string
	a := &recordingInterceptor{name: "a", log: &log}

	w := serve(t, NewChain(a), func(*gin.Context) (*Response, error) {
		return nil, errors.New("plain failure")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// No internal detail reaches the client.
	assert.NotContains(t, w.Body.String(), "plain failure")
	assert.Equal(t, []string{"a.start", "a.respond"}, log)
}

func TestChainInterceptorWithoutStartStillResponds(t *testing.T) {
	var log []string
	a := &respondOnly{log: &log}
	b := &recordingInterceptor{name: "b", log: &log, startResp: Status(http.StatusTeapot)}

	w := serve(t, NewChain(a, b), func(*gin.Context) (*Response, error) {
		log = append(log, "handler")
		return nil, nil
	})

	require.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, []string{"b.start", "b.respond", "respondOnly.respond"}, log)
}
