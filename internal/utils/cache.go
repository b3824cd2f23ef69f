package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/redis/go-redis/v9"
)

func SetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string, data *T, expire time.Duration) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when marshal json", "json")
	}

	return rdb.Set(ctx, cacheKey, bytes, expire).Err()
}
