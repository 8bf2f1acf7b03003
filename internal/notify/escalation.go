package notify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// Escalation slots stay inside waking hours: [07:00, 22:00).
	escalationEarliestHour = 7
	escalationLatestHour   = 22

	// Minimum spacing between any two reminders, in hours.
	escalationMinGapHours = 2

	// Hard bound on candidate hours examined, independent of maxLevel.
	escalationMaxCandidates = 12
)

// PlanEscalation extends baseTimes with additional hourly reminder
// slots for a day where routines are still unhandled. maxLevel caps the
// total number of reminders. now supplies the current wall clock; the
// planner never reads global time.
//
// The search is a bounded deterministic generator: candidate hours walk
// forward from the current hour, wrapping at midnight, and a candidate
// is accepted only when it falls inside the allowed window and sits at
// least two hours from every time already accepted. If nothing
// qualifies the base times come back unchanged.
func PlanEscalation(baseTimes []string, maxLevel int, now time.Time) []string {
	if len(baseTimes) == 0 || maxLevel <= len(baseTimes) {
		return baseTimes
	}

	firstHour, ok := parseHour(baseTimes[0])
	if !ok {
		return baseTimes
	}

	// Before the first base reminder the day has not started nagging
	// yet; escalation only kicks in from that point on.
	currentHour := now.Hour()
	if currentHour < firstHour {
		return baseTimes
	}

	accepted := make([]int, 0, maxLevel)
	for _, t := range baseTimes {
		if h, ok := parseHour(t); ok {
			accepted = append(accepted, h)
		}
	}

	extra := make([]string, 0, maxLevel-len(baseTimes))
	for i := 0; i < escalationMaxCandidates && len(extra) < maxLevel-len(baseTimes); i++ {
		candidate := (currentHour + i) % 24
		if candidate < escalationEarliestHour || candidate >= escalationLatestHour {
			continue
		}
		if !spacedFrom(accepted, candidate) {
			continue
		}
		accepted = append(accepted, candidate)
		extra = append(extra, fmt.Sprintf("%02d:00", candidate))
	}

	if len(extra) == 0 {
		return baseTimes
	}

	merged := make([]string, 0, len(baseTimes)+len(extra))
	merged = append(merged, baseTimes...)
	merged = append(merged, extra...)
	sort.Strings(merged)
	return merged
}

func spacedFrom(hours []int, candidate int) bool {
	for _, h := range hours {
		diff := candidate - h
		if diff < 0 {
			diff = -diff
		}
		if diff < escalationMinGapHours {
			return false
		}
	}
	return true
}

// parseHour extracts the hour from an HH:MM string.
func parseHour(t string) (int, bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) == 0 || parts[0] == "" {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}
