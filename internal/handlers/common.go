package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/middleware"
	"github.com/masna/backend/internal/services"
)

// actor builds the lifecycle actor from the authenticated request context.
func actor(c *gin.Context) services.Actor {
	return services.Actor{
		ID:   middleware.GetUserID(c),
		Role: middleware.GetRole(c),
	}
}

// paramID parses a uint path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
