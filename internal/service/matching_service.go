package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop/internal/apperr"
	"github.com/mentorloop/mentorloop/internal/model"
	"github.com/mentorloop/mentorloop/internal/repository"
)

// RequestStore контракт хранилища заявок
type RequestStore interface {
	Create(ctx context.Context, req *model.MatchingRequest) error
	GetByID(ctx context.Context, id int64) (*model.MatchingRequest, error)
	GetByMenteeAndMentor(ctx context.Context, menteeID, mentorID int64) (*model.MatchingRequest, error)
	GetPendingByMentee(ctx context.Context, menteeID int64) (*model.MatchingRequest, error)
	UpdateStatus(ctx context.Context, id int64, expected, newStatus model.RequestStatus) (int64, error)
	Accept(ctx context.Context, requestID, mentorID int64) (*model.MatchingRequest, int64, error)
	ListByMentor(ctx context.Context, mentorID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error)
	ListByMentee(ctx context.Context, menteeID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error)
}

// UserGetter проверка существования пользователя и его роли
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type MatchingService struct {
	requests RequestStore
	users    UserGetter
	logger   *zap.Logger
}

func NewMatchingService(requests RequestStore, users UserGetter, logger *zap.Logger) *MatchingService {
	return &MatchingService{
		requests: requests,
		users:    users,
		logger:   logger,
	}
}

// CreateRequestInput параметры создания заявки
type CreateRequestInput struct {
	Actor    model.Actor
	MenteeID int64 // опционально; если задан, должен совпадать с актором
	MentorID int64
	Message  string
}

// DecideInput параметры решения ментора по заявке
type DecideInput struct {
	Actor     model.Actor
	RequestID int64
}

// CancelInput параметры отмены заявки менти
type CancelInput struct {
	Actor     model.Actor
	RequestID int64
}

// Create создаёт pending-заявку менти к ментору.
// Гонка двух одновременных create разрешается частичным уникальным
// индексом в БД: предварительные проверки дают понятные ошибки,
// но гарантию даёт ограничение схемы
func (s *MatchingService) Create(ctx context.Context, in CreateRequestInput) (*model.MatchingRequest, error) {
	if in.Actor.Role != model.RoleMentee {
		return nil, fmt.Errorf("only mentees can create requests: %w", apperr.ErrForbiddenRole)
	}

	if in.MentorID <= 0 {
		return nil, fmt.Errorf("mentor_id is required: %w", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("message is required: %w", apperr.ErrInvalidArgument)
	}
	if in.MenteeID != 0 && in.MenteeID != in.Actor.ID {
		return nil, fmt.Errorf("mentee_id does not match authenticated actor: %w", apperr.ErrInvalidArgument)
	}

	// Адресат должен существовать и быть ментором
	mentor, err := s.users.GetByID(ctx, in.MentorID)
	if err != nil {
		return nil, fmt.Errorf("get mentor: %w", err)
	}
	if mentor == nil || !mentor.IsMentor() {
		return nil, fmt.Errorf("mentor %d: %w", in.MentorID, apperr.ErrNotFound)
	}

	// Одна заявка на пару за всю историю, независимо от статуса
	existing, err := s.requests.GetByMenteeAndMentor(ctx, in.Actor.ID, in.MentorID)
	if err != nil {
		return nil, fmt.Errorf("check existing request: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("request to this mentor already exists: %w", apperr.ErrConflict)
	}

	// Не более одной pending-заявки у менти
	pending, err := s.requests.GetPendingByMentee(ctx, in.Actor.ID)
	if err != nil {
		return nil, fmt.Errorf("check pending request: %w", err)
	}
	if pending != nil {
		return nil, fmt.Errorf("mentee already has a pending request: %w", apperr.ErrConflict)
	}

	req := &model.MatchingRequest{
		MenteeID: in.Actor.ID,
		MentorID: in.MentorID,
		Message:  strings.TrimSpace(in.Message),
		Status:   model.RequestStatusPending,
	}

	err = s.requests.Create(ctx, req)
	if err != nil {
		// Проигравший гонку insert получает нарушение уникальности
		if errors.Is(err, repository.ErrDuplicatePair) {
			return nil, fmt.Errorf("request to this mentor already exists: %w", apperr.ErrConflict)
		}
		if errors.Is(err, repository.ErrPendingExists) {
			return nil, fmt.Errorf("mentee already has a pending request: %w", apperr.ErrConflict)
		}
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("Matching request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("mentee_id", req.MenteeID),
		zap.Int64("mentor_id", req.MentorID),
	)

	return req, nil
}

// Accept принимает заявку и атомарно авто-отклоняет остальные
// pending-заявки ментора
func (s *MatchingService) Accept(ctx context.Context, in DecideInput) (*model.MatchingRequest, error) {
	if in.Actor.Role != model.RoleMentor {
		return nil, fmt.Errorf("only mentors can accept requests: %w", apperr.ErrForbiddenRole)
	}
	if in.RequestID <= 0 {
		return nil, fmt.Errorf("request_id is required: %w", apperr.ErrInvalidArgument)
	}

	req, cascaded, err := s.requests.Accept(ctx, in.RequestID, in.Actor.ID)
	if err != nil {
		return nil, fmt.Errorf("accept request: %w", err)
	}

	if req == nil {
		// Условный UPDATE не затронул строк: различаем "не найдено/чужая"
		// и "уже обработана"
		existing, err := s.requests.GetByID(ctx, in.RequestID)
		if err != nil {
			return nil, fmt.Errorf("get request: %w", err)
		}
		if existing == nil || existing.MentorID != in.Actor.ID {
			return nil, fmt.Errorf("request %d: %w", in.RequestID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("request is already %s: %w", existing.Status, apperr.ErrConflict)
	}

	s.logger.Info("Matching request accepted",
		zap.Int64("request_id", req.ID),
		zap.Int64("mentor_id", in.Actor.ID),
		zap.Int64("mentee_id", req.MenteeID),
		zap.Int64("auto_rejected", cascaded),
	)

	return req, nil
}

// Reject отклоняет pending-заявку. Несуществующая, чужая и уже
// обработанная заявка выглядят для вызывающего одинаково, чтобы не
// раскрывать состояние постороннему
func (s *MatchingService) Reject(ctx context.Context, in DecideInput) (*model.MatchingRequest, error) {
	if in.Actor.Role != model.RoleMentor {
		return nil, fmt.Errorf("only mentors can reject requests: %w", apperr.ErrForbiddenRole)
	}
	if in.RequestID <= 0 {
		return nil, fmt.Errorf("request_id is required: %w", apperr.ErrInvalidArgument)
	}

	existing, err := s.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if existing == nil || existing.MentorID != in.Actor.ID {
		return nil, fmt.Errorf("request %d: %w", in.RequestID, apperr.ErrNotFound)
	}

	affected, err := s.requests.UpdateStatus(ctx, in.RequestID, model.RequestStatusPending, model.RequestStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("reject request: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("request %d: %w", in.RequestID, apperr.ErrNotFound)
	}

	s.logger.Info("Matching request rejected",
		zap.Int64("request_id", in.RequestID),
		zap.Int64("mentor_id", in.Actor.ID),
	)

	req, err := s.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("get rejected request: %w", err)
	}
	return req, nil
}

// Cancel отменяет pending-заявку её владельцем. Повторная отмена уже
// отменённой заявки идемпотентна; отмена принятой или отклонённой
// заявки — конфликт с указанием текущего статуса
func (s *MatchingService) Cancel(ctx context.Context, in CancelInput) (*model.MatchingRequest, error) {
	if in.Actor.Role != model.RoleMentee {
		return nil, fmt.Errorf("only mentees can cancel requests: %w", apperr.ErrForbiddenRole)
	}
	if in.RequestID <= 0 {
		return nil, fmt.Errorf("request_id is required: %w", apperr.ErrInvalidArgument)
	}

	existing, err := s.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("request %d: %w", in.RequestID, apperr.ErrNotFound)
	}
	if existing.MenteeID != in.Actor.ID {
		return nil, fmt.Errorf("request belongs to another mentee: %w", apperr.ErrForbidden)
	}

	// Клиентский retry не должен падать на повторной отмене
	if existing.Status == model.RequestStatusCancelled {
		return existing, nil
	}
	if existing.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("request is already %s: %w", existing.Status, apperr.ErrConflict)
	}

	affected, err := s.requests.UpdateStatus(ctx, in.RequestID, model.RequestStatusPending, model.RequestStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	if affected == 0 {
		// Проиграли гонку одновременному accept/reject
		return nil, fmt.Errorf("request state changed concurrently: %w", apperr.ErrConflict)
	}

	s.logger.Info("Matching request cancelled",
		zap.Int64("request_id", in.RequestID),
		zap.Int64("mentee_id", in.Actor.ID),
	)

	req, err := s.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("get cancelled request: %w", err)
	}
	return req, nil
}

// ListOutgoing получает исходящие заявки менти, новые первыми
func (s *MatchingService) ListOutgoing(ctx context.Context, actor model.Actor, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	if actor.Role != model.RoleMentee {
		return nil, fmt.Errorf("outgoing requests are for mentees: %w", apperr.ErrForbiddenRole)
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", *status, apperr.ErrInvalidArgument)
	}

	requests, err := s.requests.ListByMentee(ctx, actor.ID, status)
	if err != nil {
		return nil, fmt.Errorf("list outgoing requests: %w", err)
	}
	return requests, nil
}

// ListIncoming получает входящие заявки ментора, новые первыми
func (s *MatchingService) ListIncoming(ctx context.Context, actor model.Actor, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	if actor.Role != model.RoleMentor {
		return nil, fmt.Errorf("incoming requests are for mentors: %w", apperr.ErrForbiddenRole)
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", *status, apperr.ErrInvalidArgument)
	}

	requests, err := s.requests.ListByMentor(ctx, actor.ID, status)
	if err != nil {
		return nil, fmt.Errorf("list incoming requests: %w", err)
	}
	return requests, nil
}
