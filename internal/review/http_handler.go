package review

import (
	"net/http"

	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type addReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank,max=2000"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,notblank,max=2000"`
}

// Add handles POST /api/reviews/books/{id}
// @Summary Review a book
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400,401,404,409 {object} httpx.ErrorResponse
// @Router /api/reviews/books/{id} [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	rv, err := h.service.Add(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"), AddInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, rv)
}

// Get handles GET /api/reviews/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	rv, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rv, nil)
}

// Update handles PUT /api/reviews/{id}
// @Summary Edit your review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400,401,403,404 {object} httpx.ErrorResponse
// @Router /api/reviews/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	rv, err := h.service.Update(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), UpdateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rv, nil)
}

// Delete handles DELETE /api/reviews/{id}
// @Summary Delete your review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401,403,404 {object} httpx.ErrorResponse
// @Router /api/reviews/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r)); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]string{"message": "Review deleted"}, nil)
}
