package notify

import "fmt"

// TimeOfDay buckets a reminder slot into a coarse part of the day so
// copy can match the hour it fires at.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// BucketHour classifies an hour of day into a TimeOfDay.
func BucketHour(hour int) TimeOfDay {
	switch {
	case hour < 12:
		return TimeOfDayMorning
	case hour < 17:
		return TimeOfDayAfternoon
	case hour < 21:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}

// Content is a displayable reminder. Title and Body are always
// non-empty when GenerateContent returns non-nil.
type Content struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// GenerateContent produces the reminder copy for one slot, or nil when
// nothing should be sent. Nil is returned whenever there are no active
// routines or every active routine is already handled for the day; the
// rest of the system relies on that to never nag after completion.
//
// Branch priority: streak protection, then escalated urgency, then the
// standard encouragement keyed by progress.
func GenerateContent(status CompletionStatus, timeOfDay TimeOfDay, isEscalated bool, escalationLevel int) *Content {
	if !status.HasActiveRoutines || status.IsAllHandled {
		return nil
	}

	if status.HasStreakRisk {
		return streakRiskContent(status, timeOfDay)
	}

	if isEscalated && escalationLevel > 1 {
		return escalatedContent(status, timeOfDay, escalationLevel)
	}

	return standardContent(status, timeOfDay)
}

func streakRiskContent(status CompletionStatus, timeOfDay TimeOfDay) *Content {
	streak := status.MaxStreakAtRisk
	count := len(status.RoutinesAtRisk)

	var title string
	switch timeOfDay {
	case TimeOfDayMorning:
		title = fmt.Sprintf("Protect your %d-day streak", streak)
	case TimeOfDayAfternoon:
		title = fmt.Sprintf("Your %d-day streak needs you", streak)
	case TimeOfDayEvening:
		title = fmt.Sprintf("Don't lose %d days of work", streak)
	default:
		title = fmt.Sprintf("Last call for your %d-day streak", streak)
	}

	var body string
	if count == 1 {
		body = fmt.Sprintf("%q is still open today. One confirmation keeps the streak alive.", status.RoutinesAtRisk[0].Name)
	} else {
		body = fmt.Sprintf("%d routines with long streaks are still open today. A few minutes keeps them all going.", count)
	}

	return &Content{Title: title, Body: body}
}

func escalatedContent(status CompletionStatus, timeOfDay TimeOfDay, level int) *Content {
	remaining := status.Remaining

	// Urgency ramps with how deep into the extra reminders we are.
	switch {
	case level > 5:
		return &Content{
			Title: "The day is almost over",
			Body:  fmt.Sprintf("%d routine(s) still open. Even a small effort now counts before midnight.", remaining),
		}
	case level > 4:
		return &Content{
			Title: "Time is running out",
			Body:  fmt.Sprintf("Still %d routine(s) to go today. Now is a good moment.", remaining),
		}
	case level > 3:
		return &Content{
			Title: "Your routines are waiting",
			Body:  fmt.Sprintf("%d routine(s) left and the day is moving on. Knock one out?", remaining),
		}
	}

	switch timeOfDay {
	case TimeOfDayAfternoon:
		return &Content{
			Title: "Afternoon check-in",
			Body:  fmt.Sprintf("%d routine(s) still open. The afternoon is a good time to catch up.", remaining),
		}
	case TimeOfDayEvening:
		return &Content{
			Title: "Evening reminder",
			Body:  fmt.Sprintf("%d routine(s) left before the day ends.", remaining),
		}
	case TimeOfDayNight:
		return &Content{
			Title: "Before you wind down",
			Body:  fmt.Sprintf("%d routine(s) are still open today.", remaining),
		}
	default:
		return &Content{
			Title: "Gentle nudge",
			Body:  fmt.Sprintf("%d routine(s) waiting whenever you're ready.", remaining),
		}
	}
}

func standardContent(status CompletionStatus, timeOfDay TimeOfDay) *Content {
	remaining := status.Remaining

	// Nothing done yet vs. partial progress vs. one left.
	switch {
	case remaining == status.Total:
		switch timeOfDay {
		case TimeOfDayMorning:
			return &Content{
				Title: "Good morning",
				Body:  fmt.Sprintf("A fresh day, %d routine(s) ahead. Start with an easy one.", remaining),
			}
		case TimeOfDayAfternoon:
			return &Content{
				Title: "Your routines are ready",
				Body:  fmt.Sprintf("None of your %d routine(s) are done yet. There's still plenty of day left.", remaining),
			}
		case TimeOfDayEvening:
			return &Content{
				Title: "The day isn't over",
				Body:  fmt.Sprintf("%d routine(s) to go. An evening session still counts.", remaining),
			}
		default:
			return &Content{
				Title: "One before bed?",
				Body:  fmt.Sprintf("%d routine(s) didn't happen today yet. A quick one still makes the day.", remaining),
			}
		}

	case remaining == 1:
		return &Content{
			Title: "One to go",
			Body:  fmt.Sprintf("You've handled %d of %d. One routine left to finish the day.", status.Handled, status.Total),
		}

	default:
		return &Content{
			Title: "Nice progress",
			Body:  fmt.Sprintf("%d of %d done, %d to go. Keep it rolling.", status.Handled, status.Total, remaining),
		}
	}
}
