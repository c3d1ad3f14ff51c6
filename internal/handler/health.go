package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

// Health reports liveness of the two backing stores. Unauthenticated: load
// balancers probe it, so the payload carries no internals beyond up/down.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	pingDB := func(ctx context.Context) bool {
		sqlDB, err := db.DB()
		return err == nil && sqlDB.PingContext(ctx) == nil
	}
	pingRedis := func(ctx context.Context) bool {
		return rdb.Ping(ctx).Err() == nil
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		dbOK := pingDB(ctx)
		redisOK := pingRedis(ctx)

		status := http.StatusOK
		if !dbOK || !redisOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":    dbOK && redisOK,
			"db":    estadoDe(dbOK),
			"redis": estadoDe(redisOK),
		})
	}
}

func estadoDe(ok bool) string {
	if ok {
		return "connected"
	}
	return "error"
}
