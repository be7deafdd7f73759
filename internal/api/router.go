package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/api/handler"
)

// NewRouter собирает gin-роутер со всеми маршрутами
func NewRouter(h *handler.Handler, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(handler.RequestID())

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	authed := r.Group("/")
	authed.Use(h.AuthRequired())
	{
		authed.GET("/mentors", h.ListMentors)

		authed.POST("/requests", h.CreateRequest)
		authed.POST("/requests/:id/accept", h.AcceptRequest)
		authed.POST("/requests/:id/reject", h.RejectRequest)
		authed.POST("/requests/:id/cancel", h.CancelRequest)
		authed.GET("/requests/outgoing", h.ListOutgoing)
		authed.GET("/requests/incoming", h.ListIncoming)
	}

	return r
}
