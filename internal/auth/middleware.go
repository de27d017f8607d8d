package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

type ctxKey string

const ContextActorKey ctxKey = "actor"

func ActorFromContext(ctx context.Context) (ActorContext, bool) {
	actor, ok := ctx.Value(ContextActorKey).(ActorContext)
	return actor, ok
}

func ContextWithActor(ctx context.Context, actor ActorContext) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}

// writeDenial maps resolver errors onto the wire.
func writeDenial(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrResourceNotFound):
		http.Error(w, "Resource not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// RequireAdmin allows only administrators through.
func RequireAdmin(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || actor == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			resolved, err := resolver.ResolveActor(r.Context(), actor)
			if err != nil {
				writeDenial(w, err)
				return
			}
			if !resolved.IsAdmin() {
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnerOrAdmin gates a route on the ownership resolver. The
// resource identifier is taken from the first URL parameter name that is
// present on the route.
func RequireOwnerOrAdmin(resolver *Resolver, kind ResourceKind, paramNames ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || actor == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			var idStr string
			for _, name := range paramNames {
				if v := chi.URLParam(r, name); v != "" {
					idStr = v
					break
				}
			}
			if idStr == "" {
				http.Error(w, "missing resource id", http.StatusBadRequest)
				return
			}

			resourceID, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				http.Error(w, "invalid resource id", http.StatusBadRequest)
				return
			}

			if err := resolver.Authorize(r.Context(), actor, kind, resourceID); err != nil {
				writeDenial(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
