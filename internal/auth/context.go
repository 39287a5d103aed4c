package auth

import "github.com/gin-gonic/gin"

const identityKey = "identity"

// Roles a caller can claim.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Identity is the caller resolved for a request.
// UserID is only meaningful when HasUserID is true; a zero UserID matches no row.
type Identity struct {
	Role      string
	UserID    int64
	HasUserID bool
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
func (i Identity) IsOwner() bool { return i.Role == RoleOwner }
func (i Identity) IsUser() bool  { return i.Role == RoleUser }

// SetIdentity stores the resolved caller into the Gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller resolved by Identify, if any.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// MustIdentity returns the caller or a zero Identity. Handlers behind a role
// gate can rely on it being set.
func MustIdentity(c *gin.Context) Identity {
	id, _ := GetIdentity(c)
	return id
}

// OwnerScope returns the owner id that ownership predicates must match,
// or nil when the caller is an admin and bypasses them.
func (i Identity) OwnerScope() *int64 {
	if i.IsAdmin() {
		return nil
	}
	id := i.UserID
	return &id
}
