package post

import (
	"net/http"

	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[CreateRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	v, err := h.svc.Create(in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, v, http.StatusCreated)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	f := Filter{AuthorID: httpx.QueryUint(r, "user_id")}
	items, err := h.svc.List(f)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	v, err := h.svc.Get(id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, v, http.StatusOK)
	return nil
}

// LikedBy, RepostedBy, and CommentedBy are the interacted-with projections:
// full post listings filtered through the ledger.
func (h *Handler) LikedBy(w http.ResponseWriter, r *http.Request) error {
	return h.listFor(w, r, func(uid uint) Filter { return Filter{LikedBy: uid} })
}

func (h *Handler) RepostedBy(w http.ResponseWriter, r *http.Request) error {
	return h.listFor(w, r, func(uid uint) Filter { return Filter{RepostedBy: uid} })
}

func (h *Handler) CommentedBy(w http.ResponseWriter, r *http.Request) error {
	return h.listFor(w, r, func(uid uint) Filter { return Filter{CommentedBy: uid} })
}

func (h *Handler) listFor(w http.ResponseWriter, r *http.Request, f func(uint) Filter) error {
	uid, err := httpx.PathUint(r, "user_id")
	if err != nil {
		return err
	}
	items, err := h.svc.List(f(uid))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}
