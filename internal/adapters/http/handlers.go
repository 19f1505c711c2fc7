package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"clubroll/internal/application/orchestrators"
	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/schedule"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// defaultStatsMonths is how many months the stats endpoint covers when
// the caller does not say.
const defaultStatsMonths = 6

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// monthParams reads year and month from the query string, defaulting to
// the current month. The bool result is false when a supplied value is
// not a usable month.
func monthParams(r *http.Request) (int, int, bool) {
	now := timeNow()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, false
		}
		month = n
	}
	return year, month, true
}

func monthDataDeps() orchestrators.MonthDataDeps {
	return orchestrators.MonthDataDeps{
		Schedule:   stores.ScheduleStore,
		Attendance: stores.AttendanceStore,
		Holidays:   stores.Holidays,
		Roster:     stores.Roster,
	}
}

// handleMemberData handles GET /api/member?year=Y&month=M
func handleMemberData(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	year, month, ok := monthParams(r)
	if !ok {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteGetMemberData(r.Context(), orchestrators.MonthDataInput{
		Year: year, Month: month,
	}, monthDataDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleAdminData handles GET /api/admin?year=Y&month=M
func handleAdminData(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	year, month, ok := monthParams(r)
	if !ok {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteGetAdminData(r.Context(), orchestrators.MonthDataInput{
		Year: year, Month: month,
	}, monthDataDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handlePersonalStats handles GET /api/stats?name=N&year=Y&month=M&count=C
func handlePersonalStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	year, month, ok := monthParams(r)
	if !ok {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	count := defaultStatsMonths
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			http.Error(w, "invalid count", http.StatusBadRequest)
			return
		}
		count = n
	}

	result, err := orchestrators.ExecutePersonalStats(r.Context(), orchestrators.PersonalStatsInput{
		Name: name, StartYear: year, StartMonth: month, Count: count,
	}, orchestrators.PersonalStatsDeps{
		Schedule:   stores.ScheduleStore,
		Attendance: stores.AttendanceStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleSaveSchedule handles POST /api/schedule
func handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Year  int                       `json:"year"`
		Month int                       `json:"month"`
		Days  map[int]schedule.DayPatch `json:"days"`
		Actor string                    `json:"actor"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if input.Year < 1 || input.Month < 1 || input.Month > 12 {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSaveSchedulePatch(r.Context(), orchestrators.SaveSchedulePatchInput{
		Year:  input.Year,
		Month: input.Month,
		Patch: input.Days,
		Actor: input.Actor,
	}, orchestrators.SaveSchedulePatchDeps{
		Schedule: stores.ScheduleStore,
		Audit:    stores.AuditStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleSaveResponseDay handles POST /api/response/day
func handleSaveResponseDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Name  string   `json:"name"`
		Year  int      `json:"year"`
		Month int      `json:"month"`
		Day   int      `json:"day"`
		Times []string `json:"times"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSaveMemberResponseDay(r.Context(), orchestrators.SaveMemberResponseDayInput{
		Name: input.Name, Year: input.Year, Month: input.Month, Day: input.Day, Times: input.Times,
	}, orchestrators.MemberResponseDeps{Attendance: stores.AttendanceStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleSaveResponseBatch handles POST /api/response/batch
func handleSaveResponseBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Name    string              `json:"name"`
		Year    int                 `json:"year"`
		Month   int                 `json:"month"`
		Changes []attendance.Change `json:"changes"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSaveMemberResponseBatch(r.Context(), orchestrators.SaveMemberResponseBatchInput{
		Name: input.Name, Year: input.Year, Month: input.Month, Changes: input.Changes,
	}, orchestrators.MemberResponseDeps{Attendance: stores.AttendanceStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleSaveResponseMonth handles POST /api/response/month, the
// month-wide submission kept for older client pages.
func handleSaveResponseMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Name      string           `json:"name"`
		Year      int              `json:"year"`
		Month     int              `json:"month"`
		Responses map[int][]string `json:"responses"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSaveMemberResponseMonth(r.Context(), orchestrators.SaveMemberResponseMonthInput{
		Name: input.Name, Year: input.Year, Month: input.Month, Responses: input.Responses,
	}, orchestrators.MemberResponseDeps{Attendance: stores.AttendanceStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handlePerfSnapshot handles GET /api/perf?minutes=N&top=N
func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	minutes := 60
	if v := r.URL.Query().Get("minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	top := 10
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			top = n
		}
	}

	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, perfCollector.Snapshot(since, top))
}
