package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/shared/apperr"
)

func doWrapped(t *testing.T, fn HandlerFunc) (*httptest.ResponseRecorder, APIError) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	Wrap(fn).ServeHTTP(rec, req)
	var body APIError
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestWrap(t *testing.T) {
	t.Run("maps error kinds to statuses", func(t *testing.T) {
		cases := []struct {
			err  error
			want int
		}{
			{apperr.Validationf("missing userId"), http.StatusBadRequest},
			{apperr.Conflictf("already liked"), http.StatusConflict},
			{apperr.NotFoundf("post 9 not found"), http.StatusNotFound},
		}
		for _, tc := range cases {
			rec, body := doWrapped(t, func(w http.ResponseWriter, r *http.Request) error { return tc.err })
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.err.Error(), body.Error)
		}
	})

	t.Run("internal errors are opaque", func(t *testing.T) {
		cause := errors.New("pq: duplicate key value violates unique constraint")
		rec, body := doWrapped(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperr.Internal(cause, "")
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, body.Error, "pq:")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec, _ := doWrapped(t, func(w http.ResponseWriter, r *http.Request) error {
			WriteJSON(w, map[string]string{"ok": "yes"}, http.StatusOK)
			return nil
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDecode(t *testing.T) {
	type payload struct {
		UserID uint `json:"userId"`
	}
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"userId": 7}`))
	got, err := Decode[payload](req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{not json`))
	_, err = Decode[payload](req)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAuthMiddleware(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := UserFromCtx(r)
		if err != nil {
			WriteError(w, http.StatusUnauthorized, err, "no_user")
			return
		}
		WriteJSON(w, map[string]string{"uid": uid}, http.StatusOK)
	})

	t.Run("dev mode attaches fixed principal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AuthMiddleware("", echo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "dev")
	})

	t.Run("missing bearer rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AuthMiddleware("s3cret", echo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token resolves sub claim", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "auth-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		AuthMiddleware("s3cret", echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "auth-123")
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		AuthMiddleware("s3cret", echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPathUint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/posts/42", nil)
	req.SetPathValue("post_id", "42")
	id, err := PathUint(req, "post_id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	req.SetPathValue("post_id", "abc")
	_, err = PathUint(req, "post_id")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
