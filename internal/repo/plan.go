// Package repo contains the database access for the plan archive.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/eld-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo persists archived plans.
type PlanRepo interface {
	// Save inserts the plan or, when its trip is already archived, replaces
	// the stored payload. The returned record includes the full plan.
	Save(ctx context.Context, plan domain.Plan) (domain.ArchivedPlan, error)

	// GetByTripID returns domain.ErrNotFound when the trip was never archived.
	GetByTripID(ctx context.Context, tripID int64) (domain.ArchivedPlan, error)

	// ListPaged returns summaries newest first, without payloads, and the
	// total number of archived plans.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ArchivedPlan, int64, error)

	// Delete returns domain.ErrNotFound when nothing was removed.
	Delete(ctx context.Context, tripID int64) error
}

type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo. In production pass *pgxpool.Pool;
// in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, trip_id, trip_status, distance_miles, duration_hours,
	stop_count, day_count, received_at, created_at, updated_at`

func (r *pgPlanRepo) Save(ctx context.Context, plan domain.Plan) (domain.ArchivedPlan, error) {
	payload, err := json.Marshal(plan)
	if err != nil {
		return domain.ArchivedPlan{}, fmt.Errorf("repo.PlanRepo.Save: encode payload: %w", err)
	}

	const q = `
		INSERT INTO plans (trip_id, trip_status, distance_miles, duration_hours,
		                   stop_count, day_count, payload, received_at)
		VALUES (@trip_id, @trip_status, @distance_miles, @duration_hours,
		        @stop_count, @day_count, @payload, @received_at)
		ON CONFLICT (trip_id) DO UPDATE
		SET trip_status    = EXCLUDED.trip_status,
		    distance_miles = EXCLUDED.distance_miles,
		    duration_hours = EXCLUDED.duration_hours,
		    stop_count     = EXCLUDED.stop_count,
		    day_count      = EXCLUDED.day_count,
		    payload        = EXCLUDED.payload,
		    received_at    = EXCLUDED.received_at,
		    updated_at     = now()
		RETURNING ` + planColumns + `, payload`

	args := pgx.NamedArgs{
		"trip_id":        plan.Trip.ID,
		"trip_status":    string(plan.Trip.Status),
		"distance_miles": plan.Route.DistanceMiles,
		"duration_hours": plan.Route.DurationHours,
		"stop_count":     len(plan.Stops),
		"day_count":      len(plan.DailyLogs),
		"payload":        payload,
		"received_at":    plan.ReceivedAt,
	}

	result, err := scanPlanWithPayload(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ArchivedPlan{}, fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	return result, nil
}

func (r *pgPlanRepo) GetByTripID(ctx context.Context, tripID int64) (domain.ArchivedPlan, error) {
	const q = `SELECT ` + planColumns + `, payload FROM plans WHERE trip_id = @trip_id`

	result, err := scanPlanWithPayload(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.ArchivedPlan{}, fmt.Errorf("repo.PlanRepo.GetByTripID: %w", err)
	}
	return result, nil
}

func (r *pgPlanRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ArchivedPlan, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM plans`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + planColumns + `
		FROM plans
		ORDER BY received_at DESC, trip_id DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	plans := []domain.ArchivedPlan{}
	for rows.Next() {
		a, err := scanPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: scan: %w", err)
		}
		plans = append(plans, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: rows: %w", err)
	}
	return plans, total, nil
}

func (r *pgPlanRepo) Delete(ctx context.Context, tripID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func planDest(a *domain.ArchivedPlan, id *pgtype.UUID, status *string) []any {
	return []any{
		id, &a.TripID, status, &a.DistanceMiles, &a.DurationHours,
		&a.StopCount, &a.DayCount, &a.ReceivedAt, &a.ArchivedAt, &a.UpdatedAt,
	}
}

func scanPlan(s scanner) (domain.ArchivedPlan, error) {
	var (
		a      domain.ArchivedPlan
		id     pgtype.UUID
		status string
	)
	if err := s.Scan(planDest(&a, &id, &status)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ArchivedPlan{}, domain.ErrNotFound
		}
		return domain.ArchivedPlan{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.TripStatus = domain.TripStatus(status)
	return a, nil
}

func scanPlanWithPayload(s scanner) (domain.ArchivedPlan, error) {
	var (
		a       domain.ArchivedPlan
		id      pgtype.UUID
		status  string
		payload []byte
	)
	if err := s.Scan(append(planDest(&a, &id, &status), &payload)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ArchivedPlan{}, domain.ErrNotFound
		}
		return domain.ArchivedPlan{}, err
	}

	var plan domain.Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return domain.ArchivedPlan{}, fmt.Errorf("decode payload: %w", err)
	}
	a.ID = uuid.UUID(id.Bytes)
	a.TripStatus = domain.TripStatus(status)
	a.Plan = &plan
	return a, nil
}
