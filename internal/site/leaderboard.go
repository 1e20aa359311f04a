package site

import (
	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/middleware"
	"github.com/Scetch/potw/internal/render"
)

// Leaderboard orders users by how many solutions they have submitted.
// The row set comes from the cache when warm; a miss queries the store
// and refills it.
func (h *Handler) Leaderboard(c *gin.Context) (*middleware.Response, error) {
	ctx := c.Request.Context()

	entries, ok := h.leaderboard.Get(ctx)
	if !ok {
		var err error
		entries, err = h.store.Leaderboard(ctx)
		if err != nil {
			return nil, httperr.Internal("load leaderboard", err)
		}
		h.leaderboard.Set(ctx, entries)
	}

	list := make([]render.Context, 0, len(entries))
	for _, e := range entries {
		row := userContext(e.User)
		row["score"] = e.Score
		list = append(list, row)
	}

	return middleware.Page("leaderboard.html", render.Context{"leaderboard": list}), nil
}
