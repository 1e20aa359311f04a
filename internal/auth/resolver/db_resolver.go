package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/Scetch/potw/internal/auth"
	"github.com/Scetch/potw/internal/store"
)

// DBResolver maps federated identities to user rows. The find-or-create
// runs in one transaction so a client disconnect can never commit a
// user without its identity mapping.
type DBResolver struct {
	store *store.Store
}

func NewDBResolver(st *store.Store) *DBResolver {
	return &DBResolver{store: st}
}

func (r *DBResolver) Resolve(ctx context.Context, identity *auth.Identity) (int64, error) {
	if identity == nil || identity.Subject == "" {
		return 0, errors.New("resolver: identity missing subject")
	}

	uid, err := r.findOrCreate(ctx, identity)
	if err != nil && store.IsUniqueViolation(err) {
		// A concurrent callback for the same subject won the insert.
		// The primary key on the external id guarantees its mapping is
		// committed, so retry the lookup, not the insert.
		return r.store.UserIDByExternalID(ctx, identity.Subject)
	}
	return uid, err
}

func (r *DBResolver) findOrCreate(ctx context.Context, identity *auth.Identity) (int64, error) {
	var uid int64
	err := r.store.Transact(ctx, func(tx *store.Store) error {
		got, err := tx.UserIDByExternalID(ctx, identity.Subject)
		if err == nil {
			uid = got
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		userID, err := tx.CreateUser(ctx, handleFromEmail(identity.Email))
		if err != nil {
			return err
		}
		if err := tx.CreateExternalIdentity(ctx, identity.Subject, userID); err != nil {
			return err
		}

		// Re-read the mapping for the definitive id.
		uid, err = tx.UserIDByExternalID(ctx, identity.Subject)
		return err
	})
	return uid, err
}

// handleFromEmail derives the public handle from the email local-part.
func handleFromEmail(email string) string {
	if local, _, found := strings.Cut(email, "@"); found && local != "" {
		return local
	}
	return email
}
