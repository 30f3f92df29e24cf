package feedback

import (
	"net/http"

	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) error {
	return h.toggleOp(w, r, h.svc.Like)
}

func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) error {
	return h.toggleOp(w, r, h.svc.Unlike)
}

func (h *Handler) Repost(w http.ResponseWriter, r *http.Request) error {
	return h.toggleOp(w, r, h.svc.Repost)
}

func (h *Handler) Unrepost(w http.ResponseWriter, r *http.Request) error {
	return h.toggleOp(w, r, h.svc.Unrepost)
}

func (h *Handler) toggleOp(w http.ResponseWriter, r *http.Request, op func(uint, uint) (*PostResponse, error)) error {
	pid, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[LedgerRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	out, err := op(in.UserID, pid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) error {
	pid, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CommentRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	out, err := h.svc.Comment(in.UserID, pid, in.Content)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusCreated)
	return nil
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) error {
	pid, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	items, err := h.svc.Comments(pid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}
