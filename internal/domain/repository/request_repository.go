package repository

import (
	"context"
	"database/sql"
	"fmt"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"
)

type RequestRepository interface {
	Create(ctx context.Context, req *model.WasteRequest) error
	ListByUser(ctx context.Context, userID int64) ([]model.WasteRequest, error)
	ListAllWithOwners(ctx context.Context) ([]model.AdminRequestView, error)
	// UpdateStatus persists whatever status it is given; callers constrain the
	// value to the enumerated set.
	UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error
}

type pgRequestRepository struct {
	db *sql.DB
}

func NewPgRequestRepository(db *sql.DB) RequestRepository {
	return &pgRequestRepository{db: db}
}

func (r *pgRequestRepository) Create(ctx context.Context, req *model.WasteRequest) error {
	query := `INSERT INTO waste_requests (user_id, waste_type, quantity, description, pickup_date, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		req.UserID, req.WasteType, req.Quantity, req.Description, req.PickupDate, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgRequestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRequestRepository) ListByUser(ctx context.Context, userID int64) ([]model.WasteRequest, error) {
	query := `SELECT id, user_id, waste_type, quantity, description, pickup_date, status, created_at
	          FROM waste_requests WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgRequestRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	requests := []model.WasteRequest{}
	for rows.Next() {
		var req model.WasteRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.WasteType, &req.Quantity,
			&req.Description, &req.PickupDate, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgRequestRepository.ListByUser scan: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRequestRepository.ListByUser rows.Err: %w", err)
	}
	return requests, nil
}

func (r *pgRequestRepository) ListAllWithOwners(ctx context.Context) ([]model.AdminRequestView, error) {
	query := `SELECT wr.id, wr.user_id, wr.waste_type, wr.quantity, wr.description, wr.pickup_date,
	                 wr.status, wr.created_at, u.username, u.full_name, u.phone, u.address
	          FROM waste_requests wr
	          JOIN users u ON wr.user_id = u.id
	          ORDER BY wr.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgRequestRepository.ListAllWithOwners query: %w", err)
	}
	defer rows.Close()

	views := []model.AdminRequestView{}
	for rows.Next() {
		var v model.AdminRequestView
		if err := rows.Scan(&v.ID, &v.UserID, &v.WasteType, &v.Quantity,
			&v.Description, &v.PickupDate, &v.Status, &v.CreatedAt,
			&v.OwnerUsername, &v.OwnerFullName, &v.OwnerPhone, &v.OwnerAddress); err != nil {
			return nil, fmt.Errorf("pgRequestRepository.ListAllWithOwners scan: %w", err)
		}
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRequestRepository.ListAllWithOwners rows.Err: %w", err)
	}
	return views, nil
}

func (r *pgRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	query := `UPDATE waste_requests SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("pgRequestRepository.UpdateStatus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgRequestRepository.UpdateStatus rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
