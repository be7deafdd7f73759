package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mentorloop/mentorloop/internal/model"
)

type MockRequestStore struct {
	mock.Mock
}

func (m *MockRequestStore) Create(ctx context.Context, req *model.MatchingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestStore) GetByID(ctx context.Context, id int64) (*model.MatchingRequest, error) {
	args := m.Called(ctx, id)
	var req *model.MatchingRequest
	if v := args.Get(0); v != nil {
		req = v.(*model.MatchingRequest)
	}
	return req, args.Error(1)
}

func (m *MockRequestStore) GetByMenteeAndMentor(ctx context.Context, menteeID, mentorID int64) (*model.MatchingRequest, error) {
	args := m.Called(ctx, menteeID, mentorID)
	var req *model.MatchingRequest
	if v := args.Get(0); v != nil {
		req = v.(*model.MatchingRequest)
	}
	return req, args.Error(1)
}

func (m *MockRequestStore) GetPendingByMentee(ctx context.Context, menteeID int64) (*model.MatchingRequest, error) {
	args := m.Called(ctx, menteeID)
	var req *model.MatchingRequest
	if v := args.Get(0); v != nil {
		req = v.(*model.MatchingRequest)
	}
	return req, args.Error(1)
}

func (m *MockRequestStore) UpdateStatus(ctx context.Context, id int64, expected, newStatus model.RequestStatus) (int64, error) {
	args := m.Called(ctx, id, expected, newStatus)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestStore) Accept(ctx context.Context, requestID, mentorID int64) (*model.MatchingRequest, int64, error) {
	args := m.Called(ctx, requestID, mentorID)
	var req *model.MatchingRequest
	if v := args.Get(0); v != nil {
		req = v.(*model.MatchingRequest)
	}
	return req, args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestStore) ListByMentor(ctx context.Context, mentorID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	args := m.Called(ctx, mentorID, status)
	var requests []*model.MatchingRequest
	if v := args.Get(0); v != nil {
		requests = v.([]*model.MatchingRequest)
	}
	return requests, args.Error(1)
}

func (m *MockRequestStore) ListByMentee(ctx context.Context, menteeID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	args := m.Called(ctx, menteeID, status)
	var requests []*model.MatchingRequest
	if v := args.Get(0); v != nil {
		requests = v.([]*model.MatchingRequest)
	}
	return requests, args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	var user *model.User
	if v := args.Get(0); v != nil {
		user = v.(*model.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	var user *model.User
	if v := args.Get(0); v != nil {
		user = v.(*model.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) GetMentors(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	var users []*model.User
	if v := args.Get(0); v != nil {
		users = v.([]*model.User)
	}
	return users, args.Error(1)
}
