package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/spacefolio/internal/modules/portfolio"
)

// SystemHandlers serves operational endpoints.
type SystemHandlers struct {
	cache     *portfolio.Cache
	log       zerolog.Logger
	startedAt time.Time
}

// NewSystemHandlers creates system handlers.
func NewSystemHandlers(cache *portfolio.Cache, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		cache:     cache,
		log:       log.With().Str("handler", "system").Logger(),
		startedAt: time.Now(),
	}
}

// HandleHealth reports service liveness, cache state, and host load.
// GET /api/health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	cpuAvg, ramPercent := h.systemLoad()

	populated, refreshedAt := h.cache.Populated()
	cacheInfo := map[string]interface{}{
		"populated": populated,
	}
	if populated {
		cacheInfo["refreshed_at"] = refreshedAt.Format(time.RFC3339)
	}

	response := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"cpu_percent":    cpuAvg,
		"ram_percent":    ramPercent,
		"cache":          cacheInfo,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode health response")
	}
}

// systemLoad samples CPU and memory usage. Failures degrade to zero
// rather than failing the health check.
func (h *SystemHandlers) systemLoad() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
