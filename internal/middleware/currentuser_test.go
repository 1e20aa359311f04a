package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetch/potw/internal/render"
	"github.com/Scetch/potw/internal/session"
	"github.com/Scetch/potw/internal/store"
)

type fakeUserStore struct {
	users map[int64]store.User
	err   error
}

func (f *fakeUserStore) UserByID(_ context.Context, id int64) (store.User, error) {
	if f.err != nil {
		return store.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

// captureTemplate remembers the template context visible after the
// current-user interceptor responded.
type captureTemplate struct {
	seen map[string]any
}

func (ct *captureTemplate) Respond(c *gin.Context, resp *Response) (*Response, error) {
	if resp.Template != nil {
		ct.seen = resp.Template.Context
		resp.Template = nil
	}
	return nil, nil
}

// currentUserEnv is a tiny site: /uid/:id logs the user in, /page is a
// template route, /whoami reports the session uid.
func currentUserEnv(t *testing.T, users UserStore) (*httptest.Server, *http.Client, *captureTemplate) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	capture := &captureTemplate{}
	chain := NewChain(capture, &CurrentUser{Users: users})

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore(session.Keys("secret")...)))

	r.GET("/uid/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		require.NoError(t, err)

		sess := sessions.Default(c)
		session.SetUserID(sess, id)
		require.NoError(t, sess.Save())
		c.Status(http.StatusNoContent)
	})

	r.GET("/page", chain.Handle(func(c *gin.Context) (*Response, error) {
		return Page("page.html", nil), nil
	}))

	r.GET("/plain", chain.Handle(func(c *gin.Context) (*Response, error) {
		return Status(http.StatusOK), nil
	}))

	r.GET("/whoami", func(c *gin.Context) {
		if uid, ok := session.UserID(sessions.Default(c)); ok {
			c.String(http.StatusOK, "uid=%d", uid)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return srv, &http.Client{Jar: jar}, capture
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestCurrentUserInjectsTemplateData(t *testing.T) {
	users := &fakeUserStore{users: map[int64]store.User{
		1: {ID: 1, SID: "gbowser", Admin: true},
	}}
	srv, client, capture := currentUserEnv(t, users)

	get(t, client, srv.URL+"/uid/1")
	get(t, client, srv.URL+"/page")

	require.NotNil(t, capture.seen)
	cu, ok := capture.seen["current_user"].(render.Context)
	require.True(t, ok)
	assert.Equal(t, "gbowser", cu["sid"])
	assert.Equal(t, true, cu["admin"])
}

func TestCurrentUserAbsentWhenAnonymous(t *testing.T) {
	srv, client, capture := currentUserEnv(t, &fakeUserStore{})

	get(t, client, srv.URL+"/page")

	require.NotNil(t, capture.seen)
	_, ok := capture.seen["current_user"]
	assert.False(t, ok)
}

func TestCurrentUserClearsStaleSession(t *testing.T) {
	srv, client, capture := currentUserEnv(t, &fakeUserStore{users: map[int64]store.User{}})

	get(t, client, srv.URL+"/uid/9")

	// uid 9 does not exist; the request proceeds unauthenticated.
	resp := get(t, client, srv.URL+"/page")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, ok := capture.seen["current_user"]
	assert.False(t, ok)

	// And the uid is gone from the session by the end of the request.
	whoami, err := client.Get(srv.URL + "/whoami")
	require.NoError(t, err)
	defer whoami.Body.Close()
	body, err := io.ReadAll(whoami.Body)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", string(body))
}

func TestCurrentUserStoreFailureShortCircuits(t *testing.T) {
	srv, client, _ := currentUserEnv(t, &fakeUserStore{err: errors.New("db down")})

	get(t, client, srv.URL+"/uid/1")
	resp := get(t, client, srv.URL+"/page")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCurrentUserNoTemplateNoOp(t *testing.T) {
	users := &fakeUserStore{users: map[int64]store.User{
		1: {ID: 1, SID: "gbowser"},
	}}
	srv, client, capture := currentUserEnv(t, users)

	get(t, client, srv.URL+"/uid/1")
	resp := get(t, client, srv.URL+"/plain")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, capture.seen)
}
