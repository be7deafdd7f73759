package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/model"
	"github.com/mentorloop/mentorloop/internal/service"
)

type createRequestBody struct {
	MenteeID int64  `json:"mentee_id"`
	MentorID int64  `json:"mentor_id" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// CreateRequest создаёт заявку менти к ментору
func (h *Handler) CreateRequest(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.matching.Create(c.Request.Context(), service.CreateRequestInput{
		Actor:    actor,
		MenteeID: body.MenteeID,
		MentorID: body.MentorID,
		Message:  body.Message,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": req})
}

// AcceptRequest принимает заявку (ментор)
func (h *Handler) AcceptRequest(c *gin.Context) {
	h.decide(c, h.matching.Accept)
}

// RejectRequest отклоняет заявку (ментор)
func (h *Handler) RejectRequest(c *gin.Context) {
	h.decide(c, h.matching.Reject)
}

// decide общий код для accept/reject
func (h *Handler) decide(c *gin.Context, op func(context.Context, service.DecideInput) (*model.MatchingRequest, error)) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := op(c.Request.Context(), service.DecideInput{
		Actor:     actor,
		RequestID: requestID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// CancelRequest отменяет заявку (менти)
func (h *Handler) CancelRequest(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.matching.Cancel(c.Request.Context(), service.CancelInput{
		Actor:     actor,
		RequestID: requestID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// statusFilter разбирает необязательный query-параметр status
func statusFilter(c *gin.Context) *model.RequestStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	status := model.RequestStatus(raw)
	return &status
}

// ListOutgoing исходящие заявки менти
func (h *Handler) ListOutgoing(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requests, err := h.matching.ListOutgoing(c.Request.Context(), actor, statusFilter(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListIncoming входящие заявки ментора
func (h *Handler) ListIncoming(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requests, err := h.matching.ListIncoming(c.Request.Context(), actor, statusFilter(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
