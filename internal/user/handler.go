package user

import (
	"net/http"

	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

// Sync maps the external authenticated principal onto an internal user,
// creating it on first sight.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[ResolveRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	u, err := h.svc.Resolve(in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	authID, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	u, err := h.svc.CurrentUser(authID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}
