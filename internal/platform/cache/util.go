package cache

import (
	"fmt"
	"strings"
	"time"

	"coinstats/internal/feature/prices/domain/entity"
)

// historyKey generates a cache key for one historical page request.
func historyKey(namespace, coin string, start time.Time, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		namespace,
		safe(coin),
		start.UTC().Format(entity.DateLayout),
		limit,
	)
}

// safe escapes characters that are problematic for cache keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
