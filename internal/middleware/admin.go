package middleware

import "github.com/gin-gonic/gin"

// RequireAdmin gates the admin-prefixed routes. Anyone without the
// admin flag is sent back to the main page before the handler runs.
// It must sit after CurrentUser in the chain.
type RequireAdmin struct{}

func (RequireAdmin) Start(c *gin.Context) (*Response, error) {
	if u, ok := CurrentUserFrom(c); ok && u.Admin {
		return nil, nil
	}
	return Redirect("/"), nil
}
