package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
)

const (
	tokenIssuer = "club-booking"
	clockSkew   = 30 * time.Second
)

var (
	errUnknownRole = errors.New("token carries an unknown role")
	errBadSubject  = errors.New("token subject is not a user id")
)

// accessClaims is the token body. The user id travels as "sub".
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies access tokens for signed-in accounts.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// Issue signs a token for an account. Only accounts with a numeric id get tokens.
func (m *JWTManager) Issue(id Identity) (string, error) {
	if !id.HasUserID {
		return "", errBadSubject
	}
	role := strings.ToLower(id.Role)
	if !knownRole(role) {
		return "", errUnknownRole
	}

	now := time.Now().UTC()
	claims := &accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the caller the token names.
func (m *JWTManager) Verify(tokenStr string) (Identity, error) {
	claims := &accessClaims{}
	if _, err := m.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}); err != nil {
		return Identity{}, fmt.Errorf("failed to parse jwt: %w", err)
	}

	role := strings.ToLower(claims.Role)
	if !knownRole(role) {
		return Identity{}, errUnknownRole
	}
	userID, ok := request.ParseID(claims.Subject)
	if !ok {
		return Identity{}, errBadSubject
	}
	return Identity{Role: role, UserID: userID, HasUserID: true}, nil
}

func knownRole(role string) bool {
	switch role {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	}
	return false
}
