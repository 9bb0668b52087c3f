package util

import (
	"context"

	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/infra/token"
)

// GetTokenPayloadFromContext 從ctx取token payload，不存在回傳nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload = v.(*token.Payload)
	}

	return tokenPayload
}

// GetRequestIDFromContext 從ctx取request id
func GetRequestIDFromContext(ctx context.Context) string {
	requestID := "unknown"
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		requestID = v.(string)
	}
	return requestID
}
