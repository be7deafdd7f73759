package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorloop/mentorloop/internal/model"
	"github.com/mentorloop/mentorloop/internal/repository/base"
)

// Ошибки нарушения ограничений схемы. Классифицируются по имени
// constraint'а, чтобы гонка двух create разрешалась на уровне БД
var (
	ErrDuplicatePair = errors.New("request for this mentee/mentor pair already exists")
	ErrPendingExists = errors.New("mentee already has a pending request")
)

const requestColumns = `id, mentee_id, mentor_id, message, status, created_at, updated_at`

type MatchingRequestRepository struct {
	*base.Repository
}

func NewMatchingRequestRepository(pool *pgxpool.Pool) *MatchingRequestRepository {
	return &MatchingRequestRepository{Repository: base.NewRepository(pool)}
}

func scanRequest(row pgx.Row) (*model.MatchingRequest, error) {
	var req model.MatchingRequest
	err := row.Scan(
		&req.ID,
		&req.MenteeID,
		&req.MentorID,
		&req.Message,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create создаёт pending-заявку. Ограничения уникальности схемы
// превращаются в типизированные ошибки
func (r *MatchingRequestRepository) Create(ctx context.Context, req *model.MatchingRequest) error {
	query := `
		INSERT INTO matching_requests (mentee_id, mentor_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		req.MenteeID,
		req.MentorID,
		req.Message,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		switch base.UniqueViolation(err) {
		case "matching_requests_mentee_mentor_key":
			return ErrDuplicatePair
		case "matching_requests_one_pending_per_mentee":
			return ErrPendingExists
		}
		return fmt.Errorf("create matching request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *MatchingRequestRepository) GetByID(ctx context.Context, id int64) (*model.MatchingRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM matching_requests
		WHERE id = $1
	`

	req, err := scanRequest(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get matching request: %w", err)
	}

	return req, nil
}

// GetByMenteeAndMentor получает заявку для пары менти/ментор в любом статусе
func (r *MatchingRequestRepository) GetByMenteeAndMentor(ctx context.Context, menteeID, mentorID int64) (*model.MatchingRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM matching_requests
		WHERE mentee_id = $1 AND mentor_id = $2
	`

	req, err := scanRequest(r.QueryRow(ctx, query, menteeID, mentorID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request by pair: %w", err)
	}

	return req, nil
}

// GetPendingByMentee получает активную pending-заявку менти, если она есть
func (r *MatchingRequestRepository) GetPendingByMentee(ctx context.Context, menteeID int64) (*model.MatchingRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM matching_requests
		WHERE mentee_id = $1 AND status = $2
	`

	req, err := scanRequest(r.QueryRow(ctx, query, menteeID, model.RequestStatusPending))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending request: %w", err)
	}

	return req, nil
}

// UpdateStatus условно переводит заявку из expected в newStatus.
// Возвращает количество затронутых строк: 0 означает, что заявка
// не существует или уже не в ожидаемом статусе
func (r *MatchingRequestRepository) UpdateStatus(ctx context.Context, id int64, expected, newStatus model.RequestStatus) (int64, error) {
	query := `
		UPDATE matching_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, newStatus, id, expected)
	if err != nil {
		return 0, fmt.Errorf("update request status: %w", err)
	}

	return affected, nil
}

// Accept атомарно принимает заявку и авто-отклоняет остальные
// pending-заявки этого ментора. Либо применяются оба шага, либо ни один.
// Возвращает (nil, 0, nil), если заявка не принадлежит ментору или уже
// не pending — классификацию делает вызывающий
func (r *MatchingRequestRepository) Accept(ctx context.Context, requestID, mentorID int64) (*model.MatchingRequest, int64, error) {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	acceptQuery := `
		UPDATE matching_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND mentor_id = $3 AND status = $4
		RETURNING ` + requestColumns + `
	`

	req, err := scanRequest(tx.QueryRow(
		ctx, acceptQuery,
		model.RequestStatusAccepted,
		requestID,
		mentorID,
		model.RequestStatusPending,
	))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("accept request: %w", err)
	}

	cascadeQuery := `
		UPDATE matching_requests
		SET status = $1, updated_at = now()
		WHERE mentor_id = $2 AND status = $3 AND id <> $4
	`

	tag, err := tx.Exec(
		ctx, cascadeQuery,
		model.RequestStatusRejected,
		mentorID,
		model.RequestStatusPending,
		requestID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("cascade reject: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit transaction: %w", err)
	}

	return req, tag.RowsAffected(), nil
}

// ListByMentor получает входящие заявки ментора, новые первыми
func (r *MatchingRequestRepository) ListByMentor(ctx context.Context, mentorID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM matching_requests
		WHERE mentor_id = $1
		ORDER BY created_at DESC
	`
	args := []any{mentorID}

	if status != nil {
		query = `
			SELECT ` + requestColumns + `
			FROM matching_requests
			WHERE mentor_id = $1 AND status = $2
			ORDER BY created_at DESC
		`
		args = append(args, *status)
	}

	return r.list(ctx, query, args...)
}

// ListByMentee получает исходящие заявки менти, новые первыми
func (r *MatchingRequestRepository) ListByMentee(ctx context.Context, menteeID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM matching_requests
		WHERE mentee_id = $1
		ORDER BY created_at DESC
	`
	args := []any{menteeID}

	if status != nil {
		query = `
			SELECT ` + requestColumns + `
			FROM matching_requests
			WHERE mentee_id = $1 AND status = $2
			ORDER BY created_at DESC
		`
		args = append(args, *status)
	}

	return r.list(ctx, query, args...)
}

func (r *MatchingRequestRepository) list(ctx context.Context, query string, args ...any) ([]*model.MatchingRequest, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.MatchingRequest
	for rows.Next() {
		var req model.MatchingRequest
		err := rows.Scan(
			&req.ID,
			&req.MenteeID,
			&req.MentorID,
			&req.Message,
			&req.Status,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan matching request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}
