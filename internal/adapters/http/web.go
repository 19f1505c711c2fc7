package web

import (
	"net/http"
	"time"

	"clubroll/internal/adapters/http/middleware"
	"clubroll/internal/adapters/http/perf"
	attendanceStore "clubroll/internal/adapters/storage/attendance"
	auditStore "clubroll/internal/adapters/storage/audit"
	scheduleStore "clubroll/internal/adapters/storage/schedule"
	"clubroll/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	ScheduleStore   scheduleStore.Store
	AttendanceStore attendanceStore.Store
	AuditStore      auditStore.Store
	Holidays        orchestrators.HolidayProvider // optional
	Roster          []string
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/member", handleMemberData)
	mux.HandleFunc("/api/admin", handleAdminData)
	mux.HandleFunc("/api/stats", handlePersonalStats)
	mux.HandleFunc("/api/schedule", handleSaveSchedule)
	mux.HandleFunc("/api/response/day", handleSaveResponseDay)
	mux.HandleFunc("/api/response/batch", handleSaveResponseBatch)
	mux.HandleFunc("/api/response/month", handleSaveResponseMonth)
	mux.HandleFunc("/api/perf", handlePerfSnapshot)
}
