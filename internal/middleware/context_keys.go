package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the caller's user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx returns the user id AuthMiddleware stored on ctx, if any.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserIDFromContext reports the authenticated caller. It is always false
// when JWT_SECRET is unset because OptionalAuth skips token parsing.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, ok := c.Get(string(userIDKey)); ok {
		if userID, ok := v.(string); ok && userID != "" {
			return userID, true
		}
	}
	return UserIDFromCtx(c.Request.Context())
}
