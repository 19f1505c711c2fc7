package holiday

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	ical "github.com/arran4/golang-ical"
)

// DefaultTTL is how long one month's holiday map stays cached.
const DefaultTTL = 6 * time.Hour

// Service supplies day-of-month → holiday label maps for a month,
// backed by an ICS feed and a short-lived in-memory cache. Lookups are
// tolerant: any fault degrades to an empty map, never an error.
type Service struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry

	now func() time.Time
}

type cacheEntry struct {
	days    map[int]string
	expires time.Time
}

// NewService creates a holiday service over the given ICS feed URL.
// A non-positive ttl falls back to DefaultTTL.
func NewService(url string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  make(map[string]cacheEntry),
		now:    time.Now,
	}
}

// MonthHolidays returns the holiday labels for one month. The result
// is empty when the feed is unset, unreachable, or unparseable.
func (s *Service) MonthHolidays(ctx context.Context, year, month int) map[int]string {
	if s.url == "" {
		return map[int]string{}
	}
	key := fmt.Sprintf("%04d-%02d", year, month)

	s.mu.Lock()
	if e, ok := s.cache[key]; ok && s.now().Before(e.expires) {
		s.mu.Unlock()
		return copyDays(e.days)
	}
	s.mu.Unlock()

	days, err := s.fetchMonth(ctx, year, month)
	if err != nil {
		slog.Warn("holiday fetch failed", "year", year, "month", month, "error", err.Error())
		return map[int]string{}
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{days: days, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return copyDays(days)
}

func (s *Service) fetchMonth(ctx context.Context, year, month int) (map[int]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	cal, err := ical.ParseCalendar(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	days := make(map[int]string)
	for _, ev := range cal.Events() {
		start, ok := eventStart(ev)
		if !ok {
			continue
		}
		if start.Year() != year || int(start.Month()) != month {
			continue
		}
		label := ""
		if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
			label = p.Value
		}
		days[start.Day()] = label
	}
	return days, nil
}

// eventStart extracts the event's start date, handling both date-time
// and all-day DATE values.
func eventStart(ev *ical.VEvent) (time.Time, bool) {
	if t, err := ev.GetStartAt(); err == nil && !t.IsZero() {
		return t, true
	}
	p := ev.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil || p.Value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("20060102", strings.TrimSpace(p.Value)); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func copyDays(days map[int]string) map[int]string {
	out := make(map[int]string, len(days))
	for d, label := range days {
		out[d] = label
	}
	return out
}
