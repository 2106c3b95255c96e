package storage

import "time"

// SessionModel is the GORM model for sessions table
type SessionModel struct {
	ActualDurationSeconds     int64 `gorm:"not null;default:0"`
	CompletedWorkCountInCycle int   `gorm:"not null;default:0"`
	CreatedAt                 time.Time
	EarlyCompletion           bool       `gorm:"not null;default:false"`
	EndedAt                   *time.Time
	ID                        string     `gorm:"primaryKey"`
	PlannedDurationSeconds    int64      `gorm:"not null"`
	Rating                    *int
	StartedAt                 time.Time  `gorm:"not null"`
	Status                    string     `gorm:"not null"`
	Type                      string     `gorm:"not null"`
	UpdatedAt                 time.Time
	UserID                    string `gorm:"not null"`
	XPEarned                  int    `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// SessionPauseModel is the GORM model for pause intervals
type SessionPauseModel struct {
	EndAt     *time.Time
	Position  int        `gorm:"primaryKey"`
	SessionID string     `gorm:"primaryKey"`
	StartAt   time.Time  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SessionPauseModel) TableName() string { return "session_pauses" }

// DistractionModel is the GORM model for the distraction log
type DistractionModel struct {
	ID         string    `gorm:"primaryKey"`
	OccurredAt time.Time `gorm:"not null"`
	SessionID  string    `gorm:"not null"`
	Type       string    `gorm:"not null"`
	UserID     string    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DistractionModel) TableName() string { return "distractions" }

// ProgressionModel is the GORM model for XP and level
type ProgressionModel struct {
	AppliedRef string `gorm:"not null;default:''"`
	Level      int    `gorm:"not null;default:1"`
	UpdatedAt  time.Time
	UserID     string `gorm:"primaryKey"`
	XPTotal    int    `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (ProgressionModel) TableName() string { return "progression" }

// StreakModel is the GORM model for daily streaks. Dates are YYYY-MM-DD.
type StreakModel struct {
	AppliedRef        string `gorm:"not null;default:''"`
	CurrentStreakDays int    `gorm:"not null;default:0"`
	LastActivityDate  string `gorm:"not null;default:''"`
	LongestStreakDays int    `gorm:"not null;default:0"`
	NextMilestoneDays int    `gorm:"not null;default:0"`
	UpdatedAt         time.Time
	UserID            string `gorm:"primaryKey"`
}

// TableName specifies the table name for GORM
func (StreakModel) TableName() string { return "streaks" }

// WeeklyGoalModel is the GORM model for the current weekly goal
type WeeklyGoalModel struct {
	AppliedRef        string `gorm:"not null;default:''"`
	CompletedSessions int    `gorm:"not null;default:0"`
	CompletedTasks    int    `gorm:"not null;default:0"`
	GoalMet           bool   `gorm:"not null;default:false"`
	TargetSessions    int    `gorm:"not null"`
	TargetTasks       int    `gorm:"not null"`
	UpdatedAt         time.Time
	UserID            string `gorm:"primaryKey"`
	WeekStartDate     string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (WeeklyGoalModel) TableName() string { return "weekly_goals" }

// RewardGrantModel is the GORM model for the reward journal
type RewardGrantModel struct {
	Completed             bool `gorm:"not null;default:false"`
	CreatedAt             time.Time
	Key                   string    `gorm:"primaryKey;column:grant_key"`
	MilestoneDays         int       `gorm:"not null;default:0"`
	OccurredAt            time.Time `gorm:"not null"`
	Source                string    `gorm:"not null"`
	SourceID              string    `gorm:"not null"`
	StartLevel            int       `gorm:"not null"`
	StreakDays            int       `gorm:"not null;default:0"`
	UpdatedAt             time.Time
	UserID                string  `gorm:"not null"`
	WeeklyGoalMet         bool    `gorm:"not null;default:false"`
	WeeklyProgressPercent float64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (RewardGrantModel) TableName() string { return "reward_grants" }

// RewardGrantStepModel is one applied step of a reward grant
type RewardGrantStepModel struct {
	GrantKey string `gorm:"primaryKey"`
	Step     string `gorm:"primaryKey"`
	XP       int    `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (RewardGrantStepModel) TableName() string { return "reward_grant_steps" }
