package contextutil

import (
	"context"

	"bazarlyq-main/internal/middleware"
)

// GetProfileIDFromContext извлекает profileID из контекста
func GetProfileIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok || sess == nil {
		return "", false
	}
	return sess.ProfileID, true
}
