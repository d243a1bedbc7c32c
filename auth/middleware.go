package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"campus-canteen/apperr"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, uid string) (*Profile, error)
}

type Middleware struct {
	verifier *Verifier
	profiles ProfileStore
}

func NewMiddleware(verifier *Verifier, profiles ProfileStore) *Middleware {
	return &Middleware{verifier: verifier, profiles: profiles}
}

// Resolve verifies the bearer token and looks up the caller's role. Callers
// without a profile record are treated as students.
func (m *Middleware) Resolve(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		return Identity{}, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthenticated)
	}

	id, err := m.verifier.Verify(token)
	if err != nil {
		return Identity{}, err
	}

	if m.profiles == nil {
		return id, nil
	}
	profile, err := m.profiles.GetProfile(r.Context(), id.UID)
	switch {
	case err == nil:
		id.Role = profile.Role
		if id.DisplayName == "" {
			id.DisplayName = profile.Name
		}
	case errors.Is(err, apperr.ErrNotFound):
	default:
		return Identity{}, err
	}
	return id, nil
}

func (m *Middleware) Wrap(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.Resolve(r)
		if err != nil {
			apperr.WriteError(w, err)
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (m *Middleware) Admin(next http.HandlerFunc) http.Handler {
	return m.Wrap(RequireAdmin(next))
}

func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok {
			apperr.WriteError(w, apperr.ErrUnauthenticated)
			return
		}
		if !id.IsAdmin() {
			apperr.WriteError(w, fmt.Errorf("%w: admin role required", apperr.ErrForbidden))
			return
		}
		next(w, r)
	}
}
