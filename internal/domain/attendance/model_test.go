package attendance_test

import (
	"reflect"
	"testing"

	"clubroll/internal/domain/attendance"
)

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// TestParseTimes tests the response variant derivation.
func TestParseTimes(t *testing.T) {
	tests := []struct {
		name  string
		times []string
		want  attendance.Response
	}{
		{"empty clears", nil, attendance.Response{Status: attendance.StatusNone}},
		{"morning only", []string{"morning"}, attendance.Response{Status: attendance.StatusPresent}},
		{"all sessions", []string{"morning", "afternoon", "after"}, attendance.Response{Status: attendance.StatusPresent}},
		{"absent", []string{"absent"}, attendance.Response{Status: attendance.StatusAbsent}},
		{"absent wins over sessions", []string{"morning", "absent"}, attendance.Response{Status: attendance.StatusAbsent}},
		{"absent strips modifiers", []string{"absent", "tardy", "early"}, attendance.Response{Status: attendance.StatusAbsent}},
		{"tardy modifier", []string{"afternoon", "tardy"}, attendance.Response{Status: attendance.StatusPresent, Tardy: true}},
		{"early modifier", []string{"after", "early"}, attendance.Response{Status: attendance.StatusPresent, Early: true}},
		{"tardy alone still present", []string{"tardy"}, attendance.Response{Status: attendance.StatusPresent, Tardy: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attendance.ParseTimes(tt.times); got != tt.want {
				t.Errorf("ParseTimes(%v) = %+v, want %+v", tt.times, got, tt.want)
			}
		})
	}
}

// TestSets_Reconcile_Idempotent tests that re-applying the same
// response changes nothing.
func TestSets_Reconcile_Idempotent(t *testing.T) {
	start := attendance.Sets{Present: []string{"みゆ"}, Absent: []string{"まな"}}
	r := attendance.ParseTimes([]string{"morning", "tardy"})

	once := start.Reconcile("ゆうり", r)
	twice := once.Reconcile("ゆうり", r)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Reconcile not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
	if !contains(once.Present, "ゆうり") || !contains(once.Tardy, "ゆうり") {
		t.Errorf("member not added to expected sets: %+v", once)
	}
	if !contains(once.Present, "みゆ") || !contains(once.Absent, "まな") {
		t.Errorf("other members disturbed: %+v", once)
	}
}

// TestSets_Reconcile_StateSwitch tests that switching from tardy
// presence to absent leaves no residue.
func TestSets_Reconcile_StateSwitch(t *testing.T) {
	s := attendance.Sets{}
	s = s.Reconcile("しん", attendance.ParseTimes([]string{"morning", "tardy"}))
	s = s.Reconcile("しん", attendance.ParseTimes([]string{"absent"}))

	if contains(s.Present, "しん") || contains(s.Tardy, "しん") || contains(s.Early, "しん") {
		t.Errorf("stale membership after switch to absent: %+v", s)
	}
	if !contains(s.Absent, "しん") {
		t.Errorf("member missing from absent: %+v", s)
	}
}

// TestSets_Reconcile_Clear tests that an empty response removes the
// member from every set.
func TestSets_Reconcile_Clear(t *testing.T) {
	s := attendance.Sets{
		Present: []string{"えみり"},
		Tardy:   []string{"えみり"},
	}
	s = s.Reconcile("えみり", attendance.ParseTimes(nil))

	if contains(s.Present, "えみり") || contains(s.Tardy, "えみり") || contains(s.Absent, "えみり") || contains(s.Early, "えみり") {
		t.Errorf("member not cleared: %+v", s)
	}
}

// TestSets_Day tests present replication into the three session slots.
func TestSets_Day(t *testing.T) {
	s := attendance.Sets{Present: []string{"まい"}, Early: []string{"まい"}}
	d := s.Day()

	for slot, names := range map[string][]string{"morning": d.Morning, "afternoon": d.Afternoon, "after": d.After} {
		if !reflect.DeepEqual(names, []string{"まい"}) {
			t.Errorf("%s = %v, want replicated present set", slot, names)
		}
	}
	if len(d.Absent) != 0 || !reflect.DeepEqual(d.Early, []string{"まい"}) {
		t.Errorf("modifier sets wrong: %+v", d)
	}

	// Mutating the view must not leak back into the sets.
	d.Morning[0] = "x"
	if s.Present[0] != "まい" {
		t.Error("Day() aliases the underlying present set")
	}
}
