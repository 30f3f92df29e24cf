package media

import (
	"net/http"

	"social-service/internal/shared/apperr"
	"social-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(MaxVideoSize); err != nil {
		return apperr.Validationf("invalid multipart form")
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return apperr.Validationf("missing file field")
	}
	defer file.Close()

	out, err := h.svc.Upload(r.Context(), hdr.Filename, hdr.Header.Get("Content-Type"), hdr.Size, file)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusCreated)
	return nil
}
