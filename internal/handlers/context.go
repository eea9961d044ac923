package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	iauth "github.com/vireakbo/phoneauth/internal/auth"
	"github.com/vireakbo/phoneauth/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentClaims returns the authenticated token claims set by the auth
// middleware, or nil when the request is unauthenticated.
func currentClaims(c *gin.Context) *iauth.Claims {
	value, ok := c.Get(middleware.CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*iauth.Claims)
	if !ok {
		return nil
	}
	return claims
}
