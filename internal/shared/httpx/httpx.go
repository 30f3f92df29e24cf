package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"social-service/internal/shared/apperr"
)

type ctxKey string

const userKey ctxKey = "uid"

type APIError struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Status int    `json:"status"`
}

var ErrUnauthorized = errors.New("unauthorized")

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap adapts an error-returning handler, mapping apperr kinds onto HTTP
// statuses. Internal errors are logged with their cause and reported with an
// opaque body.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if errors.Is(err, ErrUnauthorized) {
			WriteError(w, http.StatusUnauthorized, err, "unauthorized")
			return
		}
		kind := apperr.KindOf(err)
		status := apperr.HTTPStatus(kind)
		if kind == apperr.KindInternal {
			log.Printf("internal error on %s %s: %v", r.Method, r.URL.Path, apperr.Cause(err))
			WriteError(w, status, errors.New("internal error"), kind.String())
			return
		}
		WriteError(w, status, err, kind.String())
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		return t, apperr.Validationf("invalid JSON body")
	}
	return t, nil
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error, reason string) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	WriteJSON(w, APIError{Error: err.Error(), Reason: reason, Status: status}, status)
}

// AuthMiddleware validates a Bearer token and stores the external auth id
// (the "sub" claim) in the request context. With an empty secret it runs in
// dev mode and attaches a fixed principal.
func AuthMiddleware(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if secret == "" {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, "dev")))
			return
		}
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "missing_bearer")
			return
		}
		token := strings.TrimSpace(h[7:])
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) { return []byte(secret), nil })
		if err != nil || !parsed.Valid {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "invalid_token")
			return
		}
		claims, _ := parsed.Claims.(jwt.MapClaims)
		sub, _ := claims["sub"].(string)
		if sub == "" {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "missing_sub")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, sub)))
	})
}

// UserFromCtx returns the external auth id attached by AuthMiddleware.
func UserFromCtx(r *http.Request) (string, error) {
	v, _ := r.Context().Value(userKey).(string)
	if v == "" {
		return "", ErrUnauthorized
	}
	return v, nil
}

func PathUint(r *http.Request, key string) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue(key), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid %s", key)
	}
	return uint(n), nil
}

func QueryUint(r *http.Request, key string) uint {
	n, err := strconv.ParseUint(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
