package resolver

import (
	"context"

	"github.com/Scetch/potw/internal/auth"
)

// Resolver determines which internal user an external identity belongs
// to, creating the user on first sight. It is the ONLY place where
// identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (userID int64, err error)
}
