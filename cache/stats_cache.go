package stats_cache

import (
	"sync"
	"time"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

const TTL = 5 * time.Minute

// ── Lead stats cache ─────────────────────────────────────────────────────────
// The stats endpoint runs several aggregate queries; dashboards poll it, so
// a short TTL keeps the DB quiet without showing stale numbers for long.

type leadStatsEntry struct {
	stats     models.LeadStats
	fetchedAt time.Time
}

var (
	leadMu    sync.RWMutex
	leadCache *leadStatsEntry
)

func GetLeadStats() (models.LeadStats, bool) {
	leadMu.RLock()
	defer leadMu.RUnlock()
	if leadCache != nil && time.Since(leadCache.fetchedAt) < TTL {
		return leadCache.stats, true
	}
	return models.LeadStats{}, false
}

func SetLeadStats(stats models.LeadStats) {
	leadMu.Lock()
	defer leadMu.Unlock()
	leadCache = &leadStatsEntry{stats: stats, fetchedAt: time.Now()}
}

// ── Storefront filter metadata cache ─────────────────────────────────────────

type filtersEntry struct {
	data      models.ProductFilters
	fetchedAt time.Time
}

var (
	filtersMu    sync.RWMutex
	filtersCache *filtersEntry
)

func GetProductFilters() (models.ProductFilters, bool) {
	filtersMu.RLock()
	defer filtersMu.RUnlock()
	if filtersCache != nil && time.Since(filtersCache.fetchedAt) < TTL {
		return filtersCache.data, true
	}
	return models.ProductFilters{}, false
}

func SetProductFilters(data models.ProductFilters) {
	filtersMu.Lock()
	defer filtersMu.Unlock()
	filtersCache = &filtersEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate (call on any lead create/update/delete) ───────────────────────

func InvalidateLeadStats() {
	leadMu.Lock()
	leadCache = nil
	leadMu.Unlock()
}
