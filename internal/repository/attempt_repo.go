package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub-backend/internal/models"
)

type AttemptRepo struct {
	pool *pgxpool.Pool
}

func NewAttemptRepo(pool *pgxpool.Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

// Save inserts one completed attempt inside a transaction. A failed commit
// rolls back and surfaces the error; no partial attempt is ever visible.
func (r *AttemptRepo) Save(ctx context.Context, a *models.QuizAttempt) error {
	a.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO quiz_attempts (id, user_id, subject, score, total_questions, quiz_data, user_answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	if err := tx.QueryRow(ctx, query,
		a.ID, a.UserID, a.Subject, a.Score, a.TotalQuestions, a.QuizData, a.UserAnswers,
	).Scan(&a.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByUser returns the user's attempts newest first.
func (r *AttemptRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.QuizAttempt, error) {
	query := `SELECT id, user_id, subject, score, total_questions, quiz_data, user_answers, created_at
		FROM quiz_attempts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]*models.QuizAttempt, 0)
	for rows.Next() {
		a := &models.QuizAttempt{}
		err := rows.Scan(&a.ID, &a.UserID, &a.Subject, &a.Score, &a.TotalQuestions, &a.QuizData, &a.UserAnswers, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
