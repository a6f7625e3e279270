package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bestemiy/inkstudio"
)

// Service is the surface the HTTP layer needs from the core.
type Service interface {
	ListTattoos(ctx context.Context, f inkstudio.TattooFilter) ([]inkstudio.Tattoo, error)
	CreateTattoo(ctx context.Context, nt inkstudio.NewTattoo) (inkstudio.Tattoo, error)
	UpdateTattoo(ctx context.Context, id int64, patch inkstudio.TattooPatch) (inkstudio.Tattoo, error)
	DeleteTattoo(ctx context.Context, id int64, imageURL string) error
	SiteContent(ctx context.Context) (map[string]string, error)
	UpsertContent(ctx context.Context, key, value string) (inkstudio.SiteContentEntry, error)
	ListTestimonials(ctx context.Context) ([]inkstudio.Testimonial, error)
	CreateTestimonial(ctx context.Context, nt inkstudio.NewTestimonial) (inkstudio.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, in inkstudio.UploadInput, content io.Reader) (string, error)
	DeleteImage(ctx context.Context, url string) error
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig

	// UploadsDir, when non-empty, is served under /uploads/ so the
	// root-relative URLs returned by the local image backend resolve.
	// Leave empty with the remote backend.
	UploadsDir string
}

// Handler provides the HTTP handlers for the content API.
type Handler struct {
	config  HandlerConfig
	service Service
	guard   *inkstudio.Guard
}

// NewHandler creates a Handler with the given configuration, service and
// admin guard.
func NewHandler(config *HandlerConfig, service Service, guard *inkstudio.Guard) *Handler {
	return &Handler{
		config:  *config,
		service: service,
		guard:   guard,
	}
}

// Router returns the configured chi router. Read and list routes are
// public; every mutating route sits behind RequireAdmin.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Post("/admin/verify", h.handleVerify)

	r.Get("/content", h.handleGetContent)
	r.Get("/tattoos", h.handleListTattoos)
	r.Get("/testimonials", h.handleListTestimonials)

	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin(h.guard))
		r.Put("/content", h.handleUpsertContent)
		r.Post("/tattoos", h.handleCreateTattoo)
		r.Put("/tattoos", h.handleUpdateTattoo)
		r.Delete("/tattoos", h.handleDeleteTattoo)
		r.Post("/testimonials", h.handleCreateTestimonial)
		r.Delete("/testimonials", h.handleDeleteTestimonial)
		r.Post("/upload", h.handleUpload)
		r.Delete("/upload", h.handleDeleteImage)
	})

	if h.config.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.config.UploadsDir))))
	}

	return r
}

type verifyRequest struct {
	Password string `json:"password"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// handleVerify checks a candidate secret from the request body. It issues
// no token and establishes no session; the caller keeps the secret and
// sends it on subsequent requests.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.guard.Match(req.Password) {
		_ = WriteJSON(w, http.StatusUnauthorized, verifyResponse{Valid: false})
		return
	}

	_ = WriteJSON(w, http.StatusOK, verifyResponse{Valid: true})
}

func (h *Handler) handleGetContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.service.SiteContent(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	if content == nil {
		content = map[string]string{}
	}

	_ = WriteJSON(w, http.StatusOK, content)
}

func (h *Handler) handleUpsertContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string  `json:"key"`
		Value *string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Key == "" || req.Value == nil {
		WriteError(w, http.StatusBadRequest, "key and value are required")
		return
	}

	entry, err := h.service.UpsertContent(r.Context(), req.Key, *req.Value)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleListTattoos(w http.ResponseWriter, r *http.Request) {
	filter := inkstudio.TattooFilter{
		Category: r.URL.Query().Get("category"),
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		if featured, err := strconv.ParseBool(v); err == nil {
			filter.Featured = &featured
		}
	}

	items, err := h.service.ListTattoos(r.Context(), filter)
	if err != nil {
		HandleError(w, err)
		return
	}

	if items == nil {
		items = []inkstudio.Tattoo{}
	}

	_ = WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateTattoo(w http.ResponseWriter, r *http.Request) {
	var req inkstudio.NewTattoo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Category == "" || req.ImageURL == "" {
		WriteError(w, http.StatusBadRequest, "title, category, and image_url are required")
		return
	}

	created, err := h.service.CreateTattoo(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateTattoo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
		inkstudio.TattooPatch
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == 0 {
		WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	updated, err := h.service.UpdateTattoo(r.Context(), req.ID, req.TattooPatch)
	if err != nil {
		if errors.Is(err, inkstudio.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Tattoo not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, updated)
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) handleDeleteTattoo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64  `json:"id"`
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == 0 {
		WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.service.DeleteTattoo(r.Context(), req.ID, req.ImageURL); err != nil {
		if errors.Is(err, inkstudio.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Tattoo not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) handleListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListTestimonials(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	if items == nil {
		items = []inkstudio.Testimonial{}
	}

	_ = WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req inkstudio.NewTestimonial
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Text == "" {
		WriteError(w, http.StatusBadRequest, "name and text are required")
		return
	}

	created, err := h.service.CreateTestimonial(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == 0 {
		WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.service.DeleteTestimonial(r.Context(), req.ID); err != nil {
		if errors.Is(err, inkstudio.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(inkstudio.MaxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	in := inkstudio.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	url, err := h.service.UploadImage(r.Context(), in, file)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, uploadResponse{URL: url})
}

// handleDeleteImage releases an uploaded image that never got attached to
// a record.
func (h *Handler) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.URL == "" {
		WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	if err := h.service.DeleteImage(r.Context(), req.URL); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
