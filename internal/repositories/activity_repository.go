package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"gearguard/internal/entities"
)

const (
	activityTable  = "maintenance_request_activities"
	activityFields = "id, request_id, activity_type, description, created_by_user_id, created_at"
)

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, activity *entities.MaintenanceRequestActivity) (uint64, error)
	CreateBatch(ctx context.Context, activities []entities.MaintenanceRequestActivity) error
	ListByRequest(ctx context.Context, requestID uint64, limit uint64) ([]entities.MaintenanceRequestActivity, error)
}

type ActivityRepository struct {
	db     *sql.DB
	logger *zap.Logger
	psql   sq.StatementBuilderType
}

func NewActivityRepository(db *sql.DB, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{
		db:     db,
		logger: logger,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ActivityRepository) insert(ctx context.Context, q querier, a *entities.MaintenanceRequestActivity) (uint64, error) {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query, args, err := r.psql.Insert(activityTable).
		Columns("request_id", "activity_type", "description", "created_by_user_id", "created_at").
		Values(a.RequestID, a.ActivityType, a.Description, a.CreatedByUserID, createdAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("сборка INSERT activities: %w", err)
	}

	var id uint64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("вставка activity: %w", err)
	}
	return id, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entities.MaintenanceRequestActivity) (uint64, error) {
	id, err := r.insert(ctx, r.db, activity)
	if err != nil {
		return 0, err
	}
	activity.ID = id
	return id, nil
}

// CreateBatch пишет все записи одной транзакцией.
func (r *ActivityRepository) CreateBatch(ctx context.Context, activities []entities.MaintenanceRequestActivity) error {
	if len(activities) == 0 {
		return nil
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for i := range activities {
			if _, err := r.insert(ctx, tx, &activities[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ActivityRepository) ListByRequest(ctx context.Context, requestID uint64, limit uint64) ([]entities.MaintenanceRequestActivity, error) {
	builder := r.psql.Select(activityFields).
		From(activityTable).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка SELECT activities: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.MaintenanceRequestActivity, 0)
	for rows.Next() {
		var a entities.MaintenanceRequestActivity
		if err := rows.Scan(&a.ID, &a.RequestID, &a.ActivityType, &a.Description, &a.CreatedByUserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования activities: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
