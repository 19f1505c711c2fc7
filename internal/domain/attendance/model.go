package attendance

import "errors"

// Time tokens accepted in a member response.
const (
	TokenAbsent    = "absent"
	TokenMorning   = "morning"
	TokenAfternoon = "afternoon"
	TokenAfter     = "after"
	TokenTardy     = "tardy"
	TokenEarly     = "early"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("member name cannot be empty")
	ErrNoChanges    = errors.New("no changes to save")
	ErrNoDateColumn = errors.New("date column could not be resolved")
)

// Day is the caller-facing view of one attendance day. A present member
// is replicated identically into all three session slots because the
// stored response carries no per-slot attendance.
type Day struct {
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	After     []string `json:"after"`
	Absent    []string `json:"absent"`
	Tardy     []string `json:"tardy"`
	Early     []string `json:"early"`
}

// Sets is the storage-boundary shape of one attendance day: the four
// persisted name-sets. Order within a set is insignificant.
type Sets struct {
	Present []string
	Absent  []string
	Tardy   []string
	Early   []string
}

// Day expands the persisted sets into the caller-facing view.
func (s Sets) Day() Day {
	return Day{
		Morning:   copyNames(s.Present),
		Afternoon: copyNames(s.Present),
		After:     copyNames(s.Present),
		Absent:    copyNames(s.Absent),
		Tardy:     copyNames(s.Tardy),
		Early:     copyNames(s.Early),
	}
}

// Status classifies a member's response for one day.
type Status int

const (
	// StatusNone means the member has not responded; they belong to no
	// set for the day.
	StatusNone Status = iota
	StatusPresent
	StatusAbsent
)

// Response is a member's reconciled state for one day. Tardy and Early
// are modifiers on presence, not categories of their own.
type Response struct {
	Status Status
	Tardy  bool
	Early  bool
}

// ParseTimes derives the response variant from raw time tokens. An
// absent token wins over everything else; any other non-empty token
// list means present; an empty list clears the member from the day.
func ParseTimes(times []string) Response {
	if len(times) == 0 {
		return Response{Status: StatusNone}
	}
	r := Response{Status: StatusPresent}
	for _, tok := range times {
		switch tok {
		case TokenAbsent:
			r.Status = StatusAbsent
		case TokenTardy:
			r.Tardy = true
		case TokenEarly:
			r.Early = true
		}
	}
	if r.Status == StatusAbsent {
		r.Tardy = false
		r.Early = false
	}
	return r
}

// Reconcile rebuilds the sets for a single member: the name is dropped
// from every set first, then re-added per the response. Repeated
// application with the same response is a no-op, and no stale
// membership survives a state change.
func (s Sets) Reconcile(name string, r Response) Sets {
	out := Sets{
		Present: without(s.Present, name),
		Absent:  without(s.Absent, name),
		Tardy:   without(s.Tardy, name),
		Early:   without(s.Early, name),
	}
	switch r.Status {
	case StatusAbsent:
		out.Absent = append(out.Absent, name)
	case StatusPresent:
		out.Present = append(out.Present, name)
		if r.Tardy {
			out.Tardy = append(out.Tardy, name)
		}
		if r.Early {
			out.Early = append(out.Early, name)
		}
	}
	return out
}

// Change is one day's worth of a member's batch submission.
type Change struct {
	Day   int      `json:"day"`
	Times []string `json:"times"`
}

func without(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func copyNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
