package handler

import (
	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop/internal/service"
)

type Handler struct {
	users     *service.UserService
	matching  *service.MatchingService
	directory *service.DirectoryService
	jwtSecret []byte
	logger    *zap.Logger
}

// NewHandler Constructor
func NewHandler(
	users *service.UserService,
	matching *service.MatchingService,
	directory *service.DirectoryService,
	jwtSecret string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:     users,
		matching:  matching,
		directory: directory,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}
