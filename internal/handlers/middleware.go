package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const operatorIdKey = "operatorId"

const (
	errMissingToken = "missing bearer token"
	errBadAuthz     = "invalid Authorization header format"
	errBadToken     = "invalid or expired token"
)

var errNoToken = errors.New(errMissingToken)

// bearerToken reads "Authorization: Bearer <token>". When allowQuery is set a
// ?token= parameter is accepted too, for clients that cannot set headers on a
// WebSocket handshake.
func bearerToken(c *gin.Context, allowQuery bool) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if tok := c.Query("token"); allowQuery && tok != "" {
			return tok, nil
		}
		return "", errNoToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		return "", errors.New(errBadAuthz)
	}
	return strings.TrimSpace(token), nil
}

// authenticate resolves the caller to an operator id or answers 401.
func (h *Handler) authenticate(c *gin.Context, allowQuery bool) (int, bool) {
	token, err := bearerToken(c, allowQuery)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return 0, false
	}
	operatorID, err := h.services.ParseToken(c.Request.Context(), token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return 0, false
	}
	return operatorID, true
}

// operatorIdMiddleware guards /api/v1 and stores the caller's operator id.
func (h *Handler) operatorIdMiddleware(c *gin.Context) {
	operatorID, ok := h.authenticate(c, false)
	if !ok {
		return
	}
	c.Set(operatorIdKey, operatorID)
	c.Next()
}

// currentOperator is the id stored by operatorIdMiddleware.
func currentOperator(c *gin.Context) int {
	return c.GetInt(operatorIdKey)
}
