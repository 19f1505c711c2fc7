package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"

	web "clubroll/internal/adapters/http"
	"clubroll/internal/adapters/http/perf"
	"clubroll/internal/adapters/holiday"
	attendanceStore "clubroll/internal/adapters/storage/attendance"
	auditStore "clubroll/internal/adapters/storage/audit"
	scheduleStore "clubroll/internal/adapters/storage/schedule"
	"clubroll/internal/adapters/storage/sheet"
	"clubroll/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfgPath := envOrDefault("CLUBROLL_CONFIG", "config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Operation log database with WAL mode and busy timeout
	dsn := cfg.AuditDBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := auditStore.InitDB(db); err != nil {
		log.Fatalf("failed to initialize operation log: %v", err)
	}

	wb := sheet.NewXLSXWorkbook(cfg.WorkbookPath)
	holidays := holiday.NewService(cfg.Holidays.ICSURL, time.Duration(cfg.Holidays.CacheTTLMinutes)*time.Minute)

	collector := perf.NewCollector(perf.DefaultRingSize)
	stores := &web.Stores{
		ScheduleStore:   scheduleStore.NewSheetStore(wb),
		AttendanceStore: attendanceStore.NewSheetStore(wb),
		AuditStore:      auditStore.NewSQLiteStore(db),
		Holidays:        holidays,
		Roster:          cfg.Roster,
	}

	// Keep the holiday cache warm so month loads never wait on the feed.
	if cfg.Holidays.RefreshCron != "" {
		c := cron.New()
		warm := func() {
			now := time.Now()
			holidays.MonthHolidays(context.Background(), now.Year(), int(now.Month()))
		}
		if _, err := c.AddFunc(cfg.Holidays.RefreshCron, warm); err != nil {
			log.Fatalf("invalid holiday refresh schedule %q: %v", cfg.Holidays.RefreshCron, err)
		}
		c.Start()
		defer c.Stop()
		go warm()
	}

	mux := web.NewMux("static", stores, collector)

	slog.Info("server starting",
		"version", version,
		"addr", cfg.Listen,
		"workbook", cfg.WorkbookPath,
	)
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
