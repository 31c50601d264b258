package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `id, employee_id, start_date, end_date, status, leave_type, applied_on, updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.StartDate, &lr.EndDate, &lr.Status, &lr.LeaveType, &lr.AppliedOn, &lr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func statusStrings(statuses []leave.LeaveRequestStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("generate leave request id: %w", err)
		}
		request.ID = id.String()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, start_date, end_date, status, leave_type, applied_on, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		) RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.StartDate, request.EndDate,
		string(request.Status), request.LeaveType, request.AppliedOn,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !isUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`
	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(*filter.Status))
		argIndex++
	}

	query := fmt.Sprintf(`SELECT %s FROM leave_requests %s ORDER BY applied_on DESC`, leaveRequestColumns, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *leaveRequestRepositoryImpl) FindOverlapping(
	ctx context.Context,
	employeeID string,
	startDate, endDate time.Time,
	statuses []leave.LeaveRequestStatus,
) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		AND status = ANY($2)
		AND start_date <= $4
		AND end_date >= $3
		ORDER BY start_date
		LIMIT 1
	`

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, statusStrings(statuses), startDate, endDate))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping leave request: %w", err)
	}
	return &found, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	if !isUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + leaveRequestColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query, id, string(from), string(to)))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, leave.ErrLeaveRequestNotFound) {
		return leave.LeaveRequest{}, fmt.Errorf("update leave request status: %w", err)
	}

	// Nothing matched: either the request is gone or its status moved on.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return leave.LeaveRequest{}, getErr
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
}

func (r *leaveRequestRepositoryImpl) ReassignEmployee(ctx context.Context, oldEmployeeID, newEmployeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_requests SET employee_id = $2, updated_at = NOW() WHERE employee_id = $1`,
		oldEmployeeID, newEmployeeID)
	if err != nil {
		return 0, fmt.Errorf("reassign leave requests from %s to %s: %w", oldEmployeeID, newEmployeeID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *leaveRequestRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("delete leave requests of %s: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *leaveRequestRepositoryImpl) CountByStatus(ctx context.Context, status leave.LeaveRequestStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, string(status)).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s leave requests: %w", status, err)
	}
	return total, nil
}
