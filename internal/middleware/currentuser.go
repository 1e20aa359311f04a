package middleware

import (
	"context"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/render"
	"github.com/Scetch/potw/internal/session"
	"github.com/Scetch/potw/internal/store"
)

// contextUserKey is the gin context slot the resolved user lives in for
// the rest of the request.
const contextUserKey = "potw.currentUser"

// UserStore is the lookup the current-user interceptor needs.
type UserStore interface {
	UserByID(ctx context.Context, id int64) (store.User, error)
}

// CurrentUser resolves the session's uid into a user record on the way
// in and injects the user's public fields into the render context on
// the way out, so no handler repeats the lookup.
type CurrentUser struct {
	Users UserStore
}

func (m *CurrentUser) Start(c *gin.Context) (*Response, error) {
	sess := sessions.Default(c)
	uid, ok := session.UserID(sess)
	if !ok {
		return nil, nil
	}

	u, err := m.Users.UserByID(c.Request.Context(), uid)
	if errors.Is(err, store.ErrNotFound) {
		// Stale session reference. Clear it and continue
		// unauthenticated.
		session.ClearUserID(sess)
		if err := sess.Save(); err != nil {
			return nil, httperr.Internal("save session", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, httperr.Internal("load current user", err)
	}

	c.Set(contextUserKey, u)
	return nil, nil
}

func (m *CurrentUser) Respond(c *gin.Context, resp *Response) (*Response, error) {
	if resp == nil || resp.Template == nil {
		return nil, nil
	}

	u, ok := CurrentUserFrom(c)
	if !ok {
		return nil, nil
	}

	resp.Template.Context["current_user"] = render.Context{
		"id":    u.ID,
		"sid":   u.SID,
		"admin": u.Admin,
	}
	return nil, nil
}

// CurrentUserFrom returns the user attached by CurrentUser, if the
// request is authenticated.
func CurrentUserFrom(c *gin.Context) (store.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return store.User{}, false
	}
	u, ok := v.(store.User)
	return u, ok
}
