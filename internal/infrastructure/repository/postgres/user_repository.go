package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/jverhelst/scorecast/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Register(ctx context.Context, userID string) error {
	insertModel := userTableModel{
		ID:              userID,
		ReminderEnabled: true,
	}
	query, args, err := qb.InsertModel("users", insertModel, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build register user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

func (r *UserRepository) SetReminderEnabled(ctx context.Context, userID string, enabled bool) error {
	insertModel := userTableModel{
		ID:              userID,
		ReminderEnabled: enabled,
	}
	query, args, err := qb.InsertModel("users", insertModel,
		"ON CONFLICT (id) DO UPDATE SET reminder_enabled = EXCLUDED.reminder_enabled")
	if err != nil {
		return fmt.Errorf("build set reminder flag query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set reminder flag: %w", err)
	}
	return nil
}

func (r *UserRepository) ReminderEnabled(ctx context.Context, userID string) (bool, error) {
	query, args, err := qb.Select("reminder_enabled").
		From("users").
		Where(qb.Eq("id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build reminder flag query: %w", err)
	}

	var enabled bool
	if err := r.db.GetContext(ctx, &enabled, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get reminder flag: %w", err)
	}
	return enabled, nil
}

func (r *UserRepository) ListRegisteredIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("id").
		From("users").
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ids, nil
}
