package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusPredicates(t *testing.T) {
	req := MatchingRequest{Status: RequestStatusPending}
	assert.True(t, req.IsPending())
	assert.False(t, req.IsTerminal())

	for _, status := range []RequestStatus{RequestStatusAccepted, RequestStatusRejected, RequestStatusCancelled} {
		req.Status = status
		assert.False(t, req.IsPending(), string(status))
		assert.True(t, req.IsTerminal(), string(status))
	}
}

func TestRequestStatusIsValid(t *testing.T) {
	assert.True(t, RequestStatusPending.IsValid())
	assert.True(t, RequestStatusCancelled.IsValid())
	assert.False(t, RequestStatus("approved").IsValid())
	assert.False(t, RequestStatus("").IsValid())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleMentor.IsValid())
	assert.True(t, RoleMentee.IsValid())
	assert.False(t, Role("admin").IsValid())
}
