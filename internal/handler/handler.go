// Package handler wires HTTP routes to services and owns nothing but
// request decoding, auth gating and response encoding.
package handler

import (
	"context"

	"cargoflow/internal/service"

	"github.com/gin-gonic/gin"
)

// actorContext returns the request context tagged with the authenticated
// user's id so services can attribute audit entries.
func actorContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if userID, ok := c.Get("userID"); ok {
		if id, ok := userID.(string); ok {
			ctx = service.WithUserID(ctx, id)
		}
	}
	return ctx
}
