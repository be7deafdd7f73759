package api_test

import (
	"context"
	"sort"
	"time"

	"github.com/mentorloop/mentorloop/internal/model"
	"github.com/mentorloop/mentorloop/internal/repository"
)

// In-memory stores mirroring the schema constraints, so the full HTTP
// stack can be exercised without PostgreSQL.

type fakeUserStore struct {
	seq    int64
	byID   map[int64]*model.User
	byName map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:   make(map[int64]*model.User),
		byName: make(map[string]*model.User),
	}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if _, exists := s.byName[user.Username]; exists {
		return repository.ErrUsernameTaken
	}
	s.seq++
	user.ID = s.seq
	user.CreatedAt = time.Now()
	s.byID[user.ID] = user
	s.byName[user.Username] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	return s.byID[id], nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return s.byName[username], nil
}

func (s *fakeUserStore) GetMentors(_ context.Context) ([]*model.User, error) {
	var mentors []*model.User
	for _, user := range s.byID {
		if user.IsMentor() {
			mentors = append(mentors, user)
		}
	}
	sort.Slice(mentors, func(i, j int) bool { return mentors[i].ID < mentors[j].ID })
	return mentors, nil
}

type fakeRequestStore struct {
	seq  int64
	byID map[int64]*model.MatchingRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{byID: make(map[int64]*model.MatchingRequest)}
}

func (s *fakeRequestStore) Create(_ context.Context, req *model.MatchingRequest) error {
	for _, existing := range s.byID {
		if existing.MenteeID == req.MenteeID && existing.MentorID == req.MentorID {
			return repository.ErrDuplicatePair
		}
		if existing.MenteeID == req.MenteeID && existing.IsPending() {
			return repository.ErrPendingExists
		}
	}
	s.seq++
	req.ID = s.seq
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	copied := *req
	s.byID[req.ID] = &copied
	return nil
}

func (s *fakeRequestStore) GetByID(_ context.Context, id int64) (*model.MatchingRequest, error) {
	req, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *req
	return &copied, nil
}

func (s *fakeRequestStore) GetByMenteeAndMentor(_ context.Context, menteeID, mentorID int64) (*model.MatchingRequest, error) {
	for _, req := range s.byID {
		if req.MenteeID == menteeID && req.MentorID == mentorID {
			copied := *req
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeRequestStore) GetPendingByMentee(_ context.Context, menteeID int64) (*model.MatchingRequest, error) {
	for _, req := range s.byID {
		if req.MenteeID == menteeID && req.IsPending() {
			copied := *req
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeRequestStore) UpdateStatus(_ context.Context, id int64, expected, newStatus model.RequestStatus) (int64, error) {
	req, ok := s.byID[id]
	if !ok || req.Status != expected {
		return 0, nil
	}
	req.Status = newStatus
	req.UpdatedAt = time.Now()
	return 1, nil
}

func (s *fakeRequestStore) Accept(_ context.Context, requestID, mentorID int64) (*model.MatchingRequest, int64, error) {
	req, ok := s.byID[requestID]
	if !ok || req.MentorID != mentorID || !req.IsPending() {
		return nil, 0, nil
	}
	req.Status = model.RequestStatusAccepted
	req.UpdatedAt = time.Now()

	var cascaded int64
	for _, other := range s.byID {
		if other.ID != requestID && other.MentorID == mentorID && other.IsPending() {
			other.Status = model.RequestStatusRejected
			other.UpdatedAt = time.Now()
			cascaded++
		}
	}

	copied := *req
	return &copied, cascaded, nil
}

func (s *fakeRequestStore) ListByMentor(_ context.Context, mentorID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	return s.list(func(req *model.MatchingRequest) bool { return req.MentorID == mentorID }, status), nil
}

func (s *fakeRequestStore) ListByMentee(_ context.Context, menteeID int64, status *model.RequestStatus) ([]*model.MatchingRequest, error) {
	return s.list(func(req *model.MatchingRequest) bool { return req.MenteeID == menteeID }, status), nil
}

func (s *fakeRequestStore) list(match func(*model.MatchingRequest) bool, status *model.RequestStatus) []*model.MatchingRequest {
	var requests []*model.MatchingRequest
	for _, req := range s.byID {
		if !match(req) {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		copied := *req
		requests = append(requests, &copied)
	}
	// Newest first; IDs are monotonic
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return requests
}
