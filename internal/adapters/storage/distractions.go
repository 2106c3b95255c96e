package storage

import (
	"context"
	"fmt"
	"iter"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

// AppendDistraction implements DistractionRepository.AppendDistraction
func (r *SQLiteRepository) AppendDistraction(ctx context.Context, event domain.DistractionEvent) error {
	model := domainToDistractionModel(event)
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to append distraction: %w", err)
		}
		return nil
	}, maxRetries)
}

// ListDistractions implements DistractionRepository.ListDistractions.
// The query runs when the sequence is ranged and rows stream from the cursor.
func (r *SQLiteRepository) ListDistractions(ctx context.Context, filter ports.DistractionFilter) iter.Seq2[domain.DistractionEvent, error] {
	return func(yield func(domain.DistractionEvent, error) bool) {
		query := r.db.WithContext(ctx).Model(&DistractionModel{})
		if filter.UserID != "" {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.SessionID != "" {
			query = query.Where("session_id = ?", filter.SessionID)
		}
		if !filter.From.IsZero() {
			query = query.Where("occurred_at >= ?", filter.From.UTC())
		}
		if !filter.To.IsZero() {
			query = query.Where("occurred_at < ?", filter.To.UTC())
		}

		rows, err := query.Order("occurred_at, rowid").Rows()
		if err != nil {
			yield(domain.DistractionEvent{}, fmt.Errorf("failed to list distractions: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var m DistractionModel
			if err := r.db.ScanRows(rows, &m); err != nil {
				yield(domain.DistractionEvent{}, fmt.Errorf("failed to read distraction: %w", err))
				return
			}
			if !yield(distractionModelToDomain(m), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.DistractionEvent{}, err)
		}
	}
}
