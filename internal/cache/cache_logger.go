package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateStudentCache drops every cache entry derived from a student
// record: the record itself, its existence check, and the chart
// aggregates.
func InvalidateStudentCache(ctx context.Context, cm *CacheManager, studentID uint, email string) {
	SafeDelete(ctx, cm.Student, fmt.Sprintf("id:%d", studentID))
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("student:%s", email))
	SafeInvalidatePattern(ctx, cm.Report, "*")
}

// InvalidateUserCache drops cache entries for one user record.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID uint, email string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%d", userID))
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("user:%s", email))
}
