package domain

// StreakState tracks consecutive calendar days with qualifying activity
type StreakState struct {
	// AppliedRef identifies the last reward step written to this state
	AppliedRef        string
	CurrentStreakDays int
	LastActivityDate  Date
	LongestStreakDays int
	NextMilestoneDays int
	UserID            string
}

// StreakResult is the outcome of recording one activity
type StreakResult struct {
	Days             int
	MilestoneDays    int
	MilestoneReached bool
}

// NewStreakState returns the state of a user with no activity
func NewStreakState(userID string, rules Rules) StreakState {
	return StreakState{NextMilestoneDays: rules.NextMilestone(0), UserID: userID}
}

// RecordActivity applies the continuation rule for an activity on day:
// the next calendar day extends the streak by one, a larger gap resets it to one,
// and a second activity on the same day (or an earlier, backdated one) changes nothing.
// A milestone is reported only on the activity that moves the streak onto it.
func (s *StreakState) RecordActivity(day Date, rules Rules) StreakResult {
	days := s.CurrentStreakDays
	switch {
	case s.LastActivityDate.IsZero() || days == 0:
		days = 1
	default:
		gap := day.DaysSince(s.LastActivityDate)
		switch {
		case gap <= 0:
			return StreakResult{Days: s.CurrentStreakDays}
		case gap == 1:
			days++
		default:
			days = 1
		}
	}

	s.CurrentStreakDays = days
	s.LastActivityDate = day
	if days > s.LongestStreakDays {
		s.LongestStreakDays = days
	}
	s.NextMilestoneDays = rules.NextMilestone(days)

	result := StreakResult{Days: days}
	if rules.IsMilestone(days) {
		result.MilestoneReached = true
		result.MilestoneDays = days
	}
	return result
}

// ActiveDays returns the streak as seen on today: the stored streak while the last
// activity was today or yesterday, zero once a day has been missed
func (s StreakState) ActiveDays(today Date) int {
	if s.LastActivityDate.IsZero() {
		return 0
	}
	if gap := today.DaysSince(s.LastActivityDate); gap > 1 {
		return 0
	}
	return s.CurrentStreakDays
}
