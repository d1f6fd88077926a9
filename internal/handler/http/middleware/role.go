package middleware

import (
	"net/http"

	"github.com/gajihub/hr-backend-go/internal/handler/http/response"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
)

// AdminOnly guards company configuration surfaces.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := jwt.ActorFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !actor.IsAdmin {
			response.HandleError(w, approval.ErrNotPermitted)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ApproverOnly admits supervisors, managers and admins; staff have no
// team surfaces.
func ApproverOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := jwt.ActorFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !actor.IsAdmin && actor.Role != "supervisor" && actor.Role != "manager" {
			response.HandleError(w, approval.ErrNotPermitted)
			return
		}
		next.ServeHTTP(w, r)
	})
}
