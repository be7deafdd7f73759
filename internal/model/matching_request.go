package model

import "time"

type RequestStatus string

// Request status constants
const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// MatchingRequest represents a mentee's request to be matched with a mentor
type MatchingRequest struct {
	ID        int64         `json:"id"`
	MenteeID  int64         `json:"mentee_id"`
	MentorID  int64         `json:"mentor_id"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsPending checks if request is still awaiting the mentor's decision
func (r *MatchingRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsTerminal checks if request reached a final state
func (r *MatchingRequest) IsTerminal() bool {
	return r.Status == RequestStatusAccepted ||
		r.Status == RequestStatusRejected ||
		r.Status == RequestStatusCancelled
}

// IsValid reports whether the status is one of the known statuses
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}
