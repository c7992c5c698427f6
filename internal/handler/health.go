package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports dependency connectivity. Postgres down means the service
// cannot work (503). Redis down only degrades it: price and KPI lookups fall
// through to the database, so the endpoint still answers 200 with a
// "degraded" status for the load balancer to keep routing traffic.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		cacheStatus := "ok"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			cacheStatus = "error"
		}

		status := http.StatusOK
		overall := "ok"
		switch {
		case dbStatus != "ok":
			status = http.StatusServiceUnavailable
			overall = "down"
		case cacheStatus != "ok":
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status": overall,
			"db":     dbStatus,
			"cache":  cacheStatus,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
