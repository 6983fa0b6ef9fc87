package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

// testUser is the caller every routed test request is authenticated as.
var testUser = uuid.New()

// withTestUser stands in for middleware.NewAuth.
func withTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUser)))
	})
}

// deps holds the services under test; unset ones stay nil.
type deps struct {
	trips    handler.TripServicer
	members  handler.MemberServicer
	calendar handler.CalendarServicer
	planning handler.PlanningServicer
	export   handler.ExportServicer
}

// newRouter wires a Server into the real chi router, as main.go does.
func newRouter(d deps) http.Handler {
	srv := handler.NewServer(d.trips, d.members, d.calendar, d.planning, d.export)
	return srv.Routes(withTestUser)
}

// do sends a request with an optional JSON body through h.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error
}

func TestRoutes_RequireUser(t *testing.T) {
	// An auth middleware that lets the request through without a user.
	passthrough := func(next http.Handler) http.Handler { return next }
	h := handler.NewServer(nil, nil, nil, nil, nil).Routes(passthrough)

	rec := do(t, h, http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", errorCode(t, rec).Code)
}
