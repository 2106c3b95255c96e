package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/pomar/internal/domain"
)

// GetSession implements SessionReader.GetSession
func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var session SessionModel
	var pauses []SessionPauseModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&session).Error; err != nil {
				return err
			}
			return tx.Where("session_id = ?", id).Order("position").Find(&pauses).Error
		})
	}, maxRetries)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
		}
		return nil, err
	}

	result := sessionModelToDomain(session, pauses)
	return &result, nil
}

// ListSessions implements SessionReader.ListSessions
func (r *SQLiteRepository) ListSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	var sessions []SessionModel
	var pauses []SessionPauseModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			query := tx.Where("user_id = ?", userID).Order("started_at DESC, created_at DESC")
			if limit > 0 {
				query = query.Limit(limit)
			}
			if err := query.Find(&sessions).Error; err != nil {
				return err
			}
			if len(sessions) == 0 {
				return nil
			}

			ids := make([]string, len(sessions))
			for i, s := range sessions {
				ids[i] = s.ID
			}
			return tx.Where("session_id IN ?", ids).Order("session_id, position").Find(&pauses).Error
		})
	}, maxRetries)

	if err != nil {
		return nil, err
	}

	// Build lookup map
	pauseMap := make(map[string][]SessionPauseModel)
	for _, p := range pauses {
		pauseMap[p.SessionID] = append(pauseMap[p.SessionID], p)
	}

	result := make([]domain.Session, len(sessions))
	for i, s := range sessions {
		result[i] = sessionModelToDomain(s, pauseMap[s.ID])
	}
	return result, nil
}

// LoadSession implements SessionReader.LoadSession
func (r *SQLiteRepository) LoadSession(ctx context.Context, userID string) (*domain.Session, error) {
	sessions, err := r.ListSessions(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// SaveSession implements SessionWriter.SaveSession
func (r *SQLiteRepository) SaveSession(ctx context.Context, session domain.Session) error {
	model, pauses := domainToSessionModel(session)

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model).Error; err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			if err := tx.Where("session_id = ?", session.ID).Delete(&SessionPauseModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear pauses: %w", err)
			}
			if len(pauses) > 0 {
				if err := tx.Create(&pauses).Error; err != nil {
					return fmt.Errorf("failed to save pauses: %w", err)
				}
			}
			return nil
		})
	}, maxRetries)
}
