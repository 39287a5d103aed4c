package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

const (
	HeaderRole   = "x-role"
	HeaderUserID = "x-user-id"
)

var (
	ErrMissingIdentity = apperror.New(http.StatusUnauthorized, "Missing auth headers")
	ErrInvalidToken    = apperror.New(http.StatusUnauthorized, "Invalid or expired token")
	ErrForbidden       = apperror.New(http.StatusForbidden, "Not allowed")
)

// Identify resolves the caller for every request without rejecting anonymous ones.
// A bearer token wins over the identity headers; the headers are only honoured
// when trustHeaders is set (an upstream gateway vouches for them).
func Identify(jwtManager *JWTManager, trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Error(c, ErrInvalidToken)
				return
			}

			id, err := jwtManager.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				response.Error(c, apperror.WithCause(ErrInvalidToken, err))
				return
			}

			SetIdentity(c, id)
			c.Next()
			return
		}

		if trustHeaders {
			role := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderRole)))
			rawID := strings.TrimSpace(c.GetHeader(HeaderUserID))
			if role != "" && rawID != "" {
				id, ok := request.ParseID(rawID)
				SetIdentity(c, Identity{Role: role, UserID: id, HasUserID: ok})
			}
		}

		c.Next()
	}
}

// RequireRoles rejects callers without an identity (401) or whose role is not listed (403).
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			response.Error(c, ErrMissingIdentity)
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			response.Error(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireUser admits any recognised role.
func RequireUser() gin.HandlerFunc {
	return RequireRoles(RoleUser, RoleOwner, RoleAdmin)
}

// RequireOwner admits club owners and admins.
func RequireOwner() gin.HandlerFunc {
	return RequireRoles(RoleOwner, RoleAdmin)
}
