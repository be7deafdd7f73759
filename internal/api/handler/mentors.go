package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMentors каталог менторов
func (h *Handler) ListMentors(c *gin.Context) {
	mentors, err := h.directory.ListMentors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}
