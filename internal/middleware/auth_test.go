package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

// echoUserHandler writes the authenticated user ID as the body.
var echoUserHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(id.String()))
})

func doAuth(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken_SetsUserID(t *testing.T) {
	h := middleware.NewAuth(testSecret, "authenticated")(echoUserHandler)
	user := uuid.New()

	rec := doAuth(h, "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(user.String())))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.String(), rec.Body.String())
}

func TestAuth_Rejects(t *testing.T) {
	h := middleware.NewAuth(testSecret, "authenticated")(echoUserHandler)
	user := uuid.New().String()

	expired := validClaims(user)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	wrongAud := validClaims(user)
	wrongAud.Audience = jwt.ClaimStrings{"anon"}

	cases := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Basic abc",
		"garbage":          "Bearer not.a.jwt",
		"wrong secret":     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(user)),
		"expired":          "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, expired),
		"wrong audience":   "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, wrongAud),
		"non-uuid subject": "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("alice")),
		"hs512":            "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, validClaims(user)),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doAuth(h, header)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestAuth_EmptyAudienceSkipsCheck(t *testing.T) {
	h := middleware.NewAuth(testSecret, "")(echoUserHandler)
	claims := validClaims(uuid.New().String())
	claims.Audience = nil

	rec := doAuth(h, "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, claims))

	assert.Equal(t, http.StatusOK, rec.Code)
}
