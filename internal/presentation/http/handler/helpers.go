package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/response"
)

// parseUUIDParam parses the named path parameter as a UUID, responding with
// 400 itself when the value is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
