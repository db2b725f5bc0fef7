package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const deviceCtxKey ctxKey = "deviceID"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	DeviceID    string `json:"device_id"`
}

func issueDeviceTokenHandler(svc DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, deviceID, err := svc.Issue(c.Request.Context())
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, tokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   svc.TTLSeconds(),
			DeviceID:    deviceID,
		})
	}
}

// deviceMiddleware resolves the bearer token to a device id and stores it
// in the request context.
func deviceMiddleware(svc DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			writeError(c, http.StatusUnauthorized, "invalid_token", "missing bearer token")
			return
		}
		deviceID, err := svc.Lookup(c.Request.Context(), token)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		ctx := context.WithValue(c.Request.Context(), deviceCtxKey, deviceID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func deviceFromContext(c *gin.Context) string {
	id, _ := c.Request.Context().Value(deviceCtxKey).(string)
	return id
}

// cartNamespace is the storage namespace owning a device's cart.
func cartNamespace(deviceID string) string {
	return "cart:" + deviceID
}
