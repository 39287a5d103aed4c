package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(jwtManager *JWTManager, trustHeaders bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identify(jwtManager, trustHeaders))

	echo := func(c *gin.Context) {
		id := MustIdentity(c)
		c.JSON(http.StatusOK, gin.H{"role": id.Role, "user_id": id.UserID, "has_user_id": id.HasUserID})
	}
	r.GET("/user", RequireUser(), echo)
	r.GET("/owner", RequireOwner(), echo)
	r.GET("/public", echo)
	return r
}

func doRequest(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoleGates(t *testing.T) {
	jwtManager := NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(jwtManager, true)

	t.Run("Missing Both Headers", func(t *testing.T) {
		w := doRequest(r, "/user", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Missing auth headers"}`, w.Body.String())
	})

	t.Run("Missing User ID Header", func(t *testing.T) {
		w := doRequest(r, "/user", map[string]string{HeaderRole: "user"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing Role Header", func(t *testing.T) {
		w := doRequest(r, "/user", map[string]string{HeaderUserID: "7"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown Role Is Forbidden", func(t *testing.T) {
		w := doRequest(r, "/user", map[string]string{HeaderRole: "guest", HeaderUserID: "7"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("User Passes User Gate", func(t *testing.T) {
		w := doRequest(r, "/user", map[string]string{HeaderRole: "User", HeaderUserID: "7"})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user", body["role"])
		assert.EqualValues(t, 7, body["user_id"])
	})

	t.Run("User Blocked By Owner Gate", func(t *testing.T) {
		w := doRequest(r, "/owner", map[string]string{HeaderRole: "user", HeaderUserID: "7"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner And Admin Pass Owner Gate", func(t *testing.T) {
		for _, role := range []string{"owner", "admin"} {
			w := doRequest(r, "/owner", map[string]string{HeaderRole: role, HeaderUserID: "3"})
			assert.Equal(t, http.StatusOK, w.Code, role)
		}
	})

	t.Run("Non Numeric User ID Scopes To Nothing", func(t *testing.T) {
		w := doRequest(r, "/user", map[string]string{HeaderRole: "user", HeaderUserID: "abc"})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["has_user_id"])
		assert.EqualValues(t, 0, body["user_id"])
	})

	t.Run("Public Route Ignores Missing Identity", func(t *testing.T) {
		w := doRequest(r, "/public", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBearerToken(t *testing.T) {
	jwtManager := NewJWTManager("test-secret", time.Hour)

	t.Run("Valid Token Wins Over Headers", func(t *testing.T) {
		r := newTestRouter(jwtManager, true)
		token, err := jwtManager.Issue(Identity{Role: RoleOwner, UserID: 42, HasUserID: true})
		require.NoError(t, err)

		w := doRequest(r, "/owner", map[string]string{
			"Authorization": "Bearer " + token,
			HeaderRole:      "user",
			HeaderUserID:    "1",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "owner", body["role"])
		assert.EqualValues(t, 42, body["user_id"])
	})

	t.Run("Invalid Token", func(t *testing.T) {
		r := newTestRouter(jwtManager, true)
		w := doRequest(r, "/public", map[string]string{"Authorization": "Bearer nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token Signed With Other Secret", func(t *testing.T) {
		r := newTestRouter(jwtManager, true)
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Issue(Identity{Role: RoleAdmin, UserID: 1, HasUserID: true})
		require.NoError(t, err)

		w := doRequest(r, "/user", map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		r := newTestRouter(jwtManager, true)
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Issue(Identity{Role: RoleUser, UserID: 1, HasUserID: true})
		require.NoError(t, err)

		w := doRequest(r, "/user", map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Headers Ignored When Untrusted", func(t *testing.T) {
		r := newTestRouter(jwtManager, false)
		w := doRequest(r, "/user", map[string]string{HeaderRole: "admin", HeaderUserID: "1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, h.Compare(hash, "secret123"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
