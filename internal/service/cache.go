package service

import (
	"fmt"
	"time"
)

// Cache keys and TTLs shared by the read-side services. Redis is a pure
// accelerator here: every cached value can be rebuilt from Postgres.
const (
	precioCacheTTL = 5 * time.Minute
	kpiCacheTTL    = 60 * time.Second
)

func precioCacheKey(barcode string) string {
	return "precio:" + barcode
}

func kpiCacheKey(dia time.Time) string {
	return fmt.Sprintf("kpis:%s", dia.Format("2006-01-02"))
}
