package domain

import "time"

// Point values awarded per completed task, keyed by priority.
const (
	PointsLow    = 5
	PointsMedium = 10
	PointsHigh   = 20
)

// PointsForPriority returns the fixed point award for a task priority.
// Unrecognized values count as medium.
func PointsForPriority(p Priority) int {
	switch p {
	case PriorityHigh:
		return PointsHigh
	case PriorityLow:
		return PointsLow
	default:
		return PointsMedium
	}
}

// LevelForPoints derives the level from cumulative points:
// floor(sqrt(points/100)) + 1, so level L is reached at 100*(L-1)^2 points.
// Uses an exact integer square root rather than math.Sqrt so level
// boundaries never drift on large totals.
func LevelForPoints(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return isqrt(totalPoints/100) + 1
}

func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// StreakPolicy selects how completions on an already-counted day affect the
// streak. The historical behavior increments on every completion, which lets
// several completions on one day inflate the streak; OncePerDay freezes the
// counter until the next calendar day.
type StreakPolicy string

const (
	StreakPerCompletion StreakPolicy = "per-completion"
	StreakOncePerDay    StreakPolicy = "once-per-day"
)

// Stats is the per-user gamification aggregate. It is only ever mutated
// through ApplyCompletion inside a serialized completion transaction.
type Stats struct {
	UserID             string     `json:"user_id"`
	TotalPoints        int        `json:"total_points"`
	Level              int        `json:"level"`
	CurrentStreak      int        `json:"current_streak"`
	LastCompletionDate *time.Time `json:"last_completion_date,omitempty"`
	CompletedTasks     int        `json:"completed_tasks"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewStats returns the all-zero aggregate created alongside a user account.
func NewStats(userID string) *Stats {
	return &Stats{
		UserID: userID,
		Level:  LevelForPoints(0),
	}
}

// ApplyCompletion folds one completion event into the aggregate. All fields
// move together; callers persist the result atomically or not at all.
func (s *Stats) ApplyCompletion(points int, at time.Time, policy StreakPolicy) {
	s.TotalPoints += points
	s.Level = LevelForPoints(s.TotalPoints)
	s.CurrentStreak = nextStreak(s.CurrentStreak, s.LastCompletionDate, at, policy)
	completedAt := at
	s.LastCompletionDate = &completedAt
	s.CompletedTasks++
}

func nextStreak(current int, last *time.Time, at time.Time, policy StreakPolicy) int {
	if last == nil {
		return 1
	}

	lastDay := startOfDay(*last)
	today := startOfDay(at)
	yesterday := today.AddDate(0, 0, -1)

	// A gap of two or more days breaks the streak.
	if lastDay.Before(yesterday) {
		return 1
	}

	if policy == StreakOncePerDay && !lastDay.Before(today) {
		if current < 1 {
			return 1
		}
		return current
	}

	return current + 1
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
