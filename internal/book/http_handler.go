package book

import (
	"net/http"
	"strconv"

	"bookreview/internal/apperror"
	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createBookRequest struct {
	Title  string `json:"title" validate:"required,notblank,max=255"`
	Author string `json:"author" validate:"required,notblank,max=255"`
	Genre  string `json:"genre" validate:"required,notblank,max=100"`
}

// parsePage reads ?page=, defaulting to 1 when absent.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperror.InvalidInput("Invalid page",
			apperror.FieldError{Field: "page", Message: "page must be a positive integer"})
	}
	return page, nil
}

// Create handles POST /api/books
// @Summary Add a book to the catalog
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createBookRequest true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400,401 {object} httpx.ErrorResponse
// @Router /api/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), CreateInput{Title: req.Title, Author: req.Author, Genre: req.Genre})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, map[string]any{"book": b})
}

// List handles GET /api/books
// @Summary List books
// @Tags books
// @Produce json
// @Param author query string false "Author contains"
// @Param genre query string false "Genre contains"
// @Param page query int false "Page, 1-based"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	query := r.URL.Query()
	result, err := h.service.List(r.Context(), Filter{
		Author: query.Get("author"),
		Genre:  query.Get("genre"),
	}, page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, result, nil)
}

// Get handles GET /api/books/{id}
// @Summary Book detail with paginated reviews
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Param page query int false "Review page, 1-based"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400,404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	detail, err := h.service.Detail(r.Context(), r.PathValue("id"), page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]any{"book": detail}, nil)
}
