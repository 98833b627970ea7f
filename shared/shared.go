package shared

import (
	"context"
	"staffdir/shared/cache"
	"staffdir/shared/constant"
	"staffdir/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins prefix and parts into a single colon separated key.
// Empty parts are kept so that distinct filter combinations never collide.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// InvalidateCaches drops every key stored under prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
