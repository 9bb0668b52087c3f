package middleware

import (
	"net/http"

	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/token"
	"github.com/luxoptic/optistore/internal/pkg/errs"
)

// AuthMiddleware 驗證ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*token.Payload)
		if !ok {
			apiutil.ErrorJSON(w, int(errs.UnauthenticatedCode), errs.New(errs.UnauthenticatedCode, "unauthenticated"), errs.ErrStrMap[errs.UnauthenticatedCode])
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles 角色授權，route group層級使用
// 角色不符回403
func RequireRoles(roles ...model.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[model.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*token.Payload)
			if !ok {
				apiutil.ErrorJSON(w, int(errs.UnauthenticatedCode), errs.New(errs.UnauthenticatedCode, "unauthenticated"), errs.ErrStrMap[errs.UnauthenticatedCode])
				return
			}
			if !allowed[payload.Role] {
				apiutil.ErrorJSON(w, int(errs.UnauthorizedCode), errs.New(errs.UnauthorizedCode, "insufficient role"), errs.ErrStrMap[errs.UnauthorizedCode])
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
