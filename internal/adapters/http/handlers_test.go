package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubroll/internal/adapters/http/perf"
	attendanceStore "clubroll/internal/adapters/storage/attendance"
	scheduleStore "clubroll/internal/adapters/storage/schedule"
	"clubroll/internal/adapters/storage/sheet"
)

func newTestServer(t *testing.T) (*httptest.Server, *sheet.MemoryWorkbook) {
	t.Helper()
	RateLimitPerSecond = 1000

	wb := sheet.NewMemoryWorkbook()
	s := &Stores{
		ScheduleStore:   scheduleStore.NewSheetStore(wb),
		AttendanceStore: attendanceStore.NewSheetStore(wb),
		Roster:          []string{"結衣", "舞"},
	}
	srv := httptest.NewServer(NewMux(t.TempDir(), s, perf.NewCollector(100)))
	t.Cleanup(srv.Close)
	return srv, wb
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestAPI_SaveAndFetchMonth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/schedule", map[string]any{
		"year": 2025, "month": 8,
		"days": map[string]any{
			"11": map[string]any{"morning": true, "note": "合宿"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save schedule status = %d", resp.StatusCode)
	}
	var saved struct {
		OK       bool                   `json:"ok"`
		Schedule map[int]map[string]any `json:"schedule"`
	}
	decodeBody(t, resp, &saved)
	if !saved.OK {
		t.Fatalf("save schedule ok = false")
	}

	resp = postJSON(t, srv.URL+"/api/response/day", map[string]any{
		"name": "結衣", "year": 2025, "month": 8, "day": 11,
		"times": []string{"morning"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save response status = %d", resp.StatusCode)
	}
	var dayResult struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &dayResult)
	if !dayResult.OK || dayResult.Message != "saved" {
		t.Fatalf("day result = %+v", dayResult)
	}

	got, err := http.Get(srv.URL + "/api/member?year=2025&month=8")
	if err != nil {
		t.Fatalf("GET member: %v", err)
	}
	var month struct {
		Schedule map[int]struct {
			Morning bool   `json:"morning"`
			Note    string `json:"note"`
		} `json:"schedule"`
		Attendance map[int]struct {
			Morning []string `json:"morning"`
		} `json:"attendance"`
		Roster []string `json:"roster"`
	}
	decodeBody(t, got, &month)

	if len(month.Schedule) != 31 {
		t.Fatalf("schedule days = %d, want 31", len(month.Schedule))
	}
	if !month.Schedule[11].Morning || month.Schedule[11].Note != "合宿" {
		t.Fatalf("schedule day 11 = %+v", month.Schedule[11])
	}
	if len(month.Attendance[11].Morning) != 1 || month.Attendance[11].Morning[0] != "結衣" {
		t.Fatalf("attendance day 11 = %+v", month.Attendance[11])
	}
	if len(month.Roster) != 2 {
		t.Fatalf("roster = %v", month.Roster)
	}
}

func TestAPI_ResponseValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/response/day", map[string]any{
		"year": 2025, "month": 8, "day": 1, "times": []string{"morning"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &got)
	if got.OK || got.Message != "name is required" {
		t.Fatalf("result = %+v", got)
	}
}

func TestAPI_ResponseBatch(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/response/batch", map[string]any{
		"name": "舞", "year": 2025, "month": 8,
		"changes": []map[string]any{
			{"day": 3, "times": []string{"absent"}},
			{"day": 4, "times": []string{"afternoon", "early"}},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		OK   bool `json:"ok"`
		Days map[int]struct {
			Absent    []string `json:"absent"`
			Afternoon []string `json:"afternoon"`
			Early     []string `json:"early"`
		} `json:"days"`
	}
	decodeBody(t, resp, &got)
	if !got.OK || len(got.Days) != 2 {
		t.Fatalf("result = %+v", got)
	}
	if len(got.Days[3].Absent) != 1 || len(got.Days[4].Early) != 1 {
		t.Fatalf("days = %+v", got.Days)
	}
}

func TestAPI_PersonalStats(t *testing.T) {
	srv, _ := newTestServer(t)

	postJSON(t, srv.URL+"/api/schedule", map[string]any{
		"year": 2025, "month": 8,
		"days": map[string]any{"5": map[string]any{"morning": true}},
	})
	postJSON(t, srv.URL+"/api/response/day", map[string]any{
		"name": "結衣", "year": 2025, "month": 8, "day": 5,
		"times": []string{"morning"},
	})

	resp, err := http.Get(srv.URL + "/api/stats?name=%E7%B5%90%E8%A1%A3&year=2025&month=8&count=2")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	var got struct {
		Months []string  `json:"months"`
		Rates  []float64 `json:"rates"`
	}
	decodeBody(t, resp, &got)
	if len(got.Months) != 2 || got.Months[0] != "8" {
		t.Fatalf("months = %v", got.Months)
	}
	if got.Rates[0] != 100 || got.Rates[1] != 0 {
		t.Fatalf("rates = %v", got.Rates)
	}

	resp, err = http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name status = %d, want 400", resp.StatusCode)
	}
}

func TestAPI_MethodAndParamChecks(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/schedule")
	if err != nil {
		t.Fatalf("GET schedule: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/schedule status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/member?month=13")
	if err != nil {
		t.Fatalf("GET member: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("month=13 status = %d, want 400", resp.StatusCode)
	}
}

func TestAPI_PerfSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)

	// Generate some traffic first.
	resp, err := http.Get(srv.URL + "/api/member?year=2025&month=8")
	if err != nil {
		t.Fatalf("GET member: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/perf")
	if err != nil {
		t.Fatalf("GET perf: %v", err)
	}
	var got struct {
		TotalRequests int64 `json:"TotalRequests"`
	}
	decodeBody(t, resp, &got)
	if got.TotalRequests < 1 {
		t.Fatalf("TotalRequests = %d, want >= 1", got.TotalRequests)
	}
}
