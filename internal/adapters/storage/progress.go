package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/pomar/internal/domain"
)

// LoadProgression implements ProgressionRepository.LoadProgression
func (r *SQLiteRepository) LoadProgression(ctx context.Context, userID string) (domain.ProgressionState, error) {
	var m ProgressionModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	}, maxRetries)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewProgressionState(userID), nil
	}
	if err != nil {
		return domain.ProgressionState{}, err
	}
	return domain.ProgressionState{
		AppliedRef: m.AppliedRef,
		Level:      m.Level,
		UserID:     m.UserID,
		XPTotal:    m.XPTotal,
	}, nil
}

// SaveProgression implements ProgressionRepository.SaveProgression
func (r *SQLiteRepository) SaveProgression(ctx context.Context, state domain.ProgressionState) error {
	m := ProgressionModel{
		AppliedRef: state.AppliedRef,
		Level:      state.Level,
		UserID:     state.UserID,
		XPTotal:    state.XPTotal,
	}
	return r.upsert(ctx, &m, "progression")
}

// LoadStreak implements StreakRepository.LoadStreak
func (r *SQLiteRepository) LoadStreak(ctx context.Context, userID string) (domain.StreakState, error) {
	var m StreakModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	}, maxRetries)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.StreakState{UserID: userID}, nil
	}
	if err != nil {
		return domain.StreakState{}, err
	}
	return streakModelToDomain(m)
}

// SaveStreak implements StreakRepository.SaveStreak
func (r *SQLiteRepository) SaveStreak(ctx context.Context, state domain.StreakState) error {
	m := domainToStreakModel(state)
	return r.upsert(ctx, &m, "streak")
}

// LoadWeeklyGoal implements WeeklyGoalRepository.LoadWeeklyGoal
func (r *SQLiteRepository) LoadWeeklyGoal(ctx context.Context, userID string) (domain.WeeklyGoalState, error) {
	var m WeeklyGoalModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	}, maxRetries)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.WeeklyGoalState{UserID: userID}, nil
	}
	if err != nil {
		return domain.WeeklyGoalState{}, err
	}
	return weeklyGoalModelToDomain(m)
}

// SaveWeeklyGoal implements WeeklyGoalRepository.SaveWeeklyGoal
func (r *SQLiteRepository) SaveWeeklyGoal(ctx context.Context, state domain.WeeklyGoalState) error {
	m := domainToWeeklyGoalModel(state)
	return r.upsert(ctx, &m, "weekly goal")
}

// LoadGrant implements RewardJournal.LoadGrant
func (r *SQLiteRepository) LoadGrant(ctx context.Context, key string) (*domain.RewardGrant, error) {
	var grant RewardGrantModel
	var steps []RewardGrantStepModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("grant_key = ?", key).First(&grant).Error; err != nil {
				return err
			}
			return tx.Where("grant_key = ?", key).Find(&steps).Error
		})
	}, maxRetries)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	result := grantModelToDomain(grant, steps)
	return &result, nil
}

// SaveGrant implements RewardJournal.SaveGrant. The grant row and its steps
// are written in one transaction.
func (r *SQLiteRepository) SaveGrant(ctx context.Context, grant domain.RewardGrant) error {
	model, steps := domainToGrantModel(grant)

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model).Error; err != nil {
				return fmt.Errorf("failed to save reward grant: %w", err)
			}
			if len(steps) > 0 {
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&steps).Error; err != nil {
					return fmt.Errorf("failed to save reward grant steps: %w", err)
				}
			}
			return nil
		})
	}, maxRetries)
}

// ListPendingGrants implements RewardJournal.ListPendingGrants
func (r *SQLiteRepository) ListPendingGrants(ctx context.Context, userID string) ([]domain.RewardGrant, error) {
	var grants []RewardGrantModel
	var steps []RewardGrantStepModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ? AND completed = ?", userID, false).
				Order("created_at, grant_key").
				Find(&grants).Error; err != nil {
				return err
			}
			if len(grants) == 0 {
				return nil
			}
			keys := make([]string, len(grants))
			for i, g := range grants {
				keys[i] = g.Key
			}
			return tx.Where("grant_key IN ?", keys).Find(&steps).Error
		})
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reward grants: %w", err)
	}

	byKey := make(map[string][]RewardGrantStepModel, len(grants))
	for _, s := range steps {
		byKey[s.GrantKey] = append(byKey[s.GrantKey], s)
	}
	result := make([]domain.RewardGrant, 0, len(grants))
	for _, g := range grants {
		result = append(result, grantModelToDomain(g, byKey[g.Key]))
	}
	return result, nil
}

func (r *SQLiteRepository) upsert(ctx context.Context, model any, what string) error {
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error; err != nil {
			return fmt.Errorf("failed to save %s: %w", what, err)
		}
		return nil
	}, maxRetries)
}
