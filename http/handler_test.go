package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bestemiy/inkstudio"
	inkhttp "github.com/bestemiy/inkstudio/http"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListTattoos(ctx context.Context, f inkstudio.TattooFilter) ([]inkstudio.Tattoo, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]inkstudio.Tattoo), args.Error(1)
}

func (m *MockService) CreateTattoo(ctx context.Context, nt inkstudio.NewTattoo) (inkstudio.Tattoo, error) {
	args := m.Called(ctx, nt)
	return args.Get(0).(inkstudio.Tattoo), args.Error(1)
}

func (m *MockService) UpdateTattoo(ctx context.Context, id int64, patch inkstudio.TattooPatch) (inkstudio.Tattoo, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(inkstudio.Tattoo), args.Error(1)
}

func (m *MockService) DeleteTattoo(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockService) SiteContent(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockService) UpsertContent(ctx context.Context, key, value string) (inkstudio.SiteContentEntry, error) {
	args := m.Called(ctx, key, value)
	return args.Get(0).(inkstudio.SiteContentEntry), args.Error(1)
}

func (m *MockService) ListTestimonials(ctx context.Context) ([]inkstudio.Testimonial, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inkstudio.Testimonial), args.Error(1)
}

func (m *MockService) CreateTestimonial(ctx context.Context, nt inkstudio.NewTestimonial) (inkstudio.Testimonial, error) {
	args := m.Called(ctx, nt)
	return args.Get(0).(inkstudio.Testimonial), args.Error(1)
}

func (m *MockService) DeleteTestimonial(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) UploadImage(ctx context.Context, in inkstudio.UploadInput, content io.Reader) (string, error) {
	args := m.Called(ctx, in, content)
	return args.String(0), args.Error(1)
}

func (m *MockService) DeleteImage(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

const adminSecret = "hunter2"

func newRouter(t *testing.T) (http.Handler, *MockService) {
	t.Helper()
	service := new(MockService)
	handler := inkhttp.NewHandler(&inkhttp.HandlerConfig{}, service, inkstudio.NewGuard(adminSecret))
	return handler.Router(), service
}

func doJSON(t *testing.T, router http.Handler, method, path, body, password string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if password != "" {
		req.Header.Set(inkhttp.AdminHeader, password)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body inkhttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHandler_Verify(t *testing.T) {
	router, _ := newRouter(t)

	t.Run("valid password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/admin/verify", `{"password":"hunter2"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"valid":true}`, rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/admin/verify", `{"password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"valid":false}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/admin/verify", `{`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_AdminRoutesRequireSecret(t *testing.T) {
	router, service := newRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/content"},
		{http.MethodPost, "/tattoos"},
		{http.MethodPut, "/tattoos"},
		{http.MethodDelete, "/tattoos"},
		{http.MethodPost, "/testimonials"},
		{http.MethodDelete, "/testimonials"},
		{http.MethodPost, "/upload"},
		{http.MethodDelete, "/upload"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := doJSON(t, router, route.method, route.path, `{}`, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Unauthorized", errorMessage(t, rec))
		})

		t.Run(route.method+" "+route.path+" wrong secret", func(t *testing.T) {
			rec := doJSON(t, router, route.method, route.path, `{}`, "wrong")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	service.AssertNotCalled(t, "UpsertContent")
	service.AssertNotCalled(t, "CreateTattoo")
	service.AssertNotCalled(t, "UploadImage")
}

func TestHandler_GetContent(t *testing.T) {
	t.Run("returns entries", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("SiteContent", mock.Anything).Return(map[string]string{"hero_tagline": "Ink"}, nil)

		rec := doJSON(t, router, http.MethodGet, "/content", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"hero_tagline":"Ink"}`, rec.Body.String())
	})

	t.Run("empty store yields empty object", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("SiteContent", mock.Anything).Return(map[string]string(nil), nil)

		rec := doJSON(t, router, http.MethodGet, "/content", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})
}

func TestHandler_UpsertContent(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		router, service := newRouter(t)

		rec := doJSON(t, router, http.MethodPut, "/content", `{"value":"x"}`, adminSecret)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "key and value are required", errorMessage(t, rec))
		service.AssertNotCalled(t, "UpsertContent")
	})

	t.Run("missing value", func(t *testing.T) {
		router, service := newRouter(t)

		rec := doJSON(t, router, http.MethodPut, "/content", `{"key":"hero_tagline"}`, adminSecret)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "UpsertContent")
	})

	t.Run("empty value accepted", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("UpsertContent", mock.Anything, "hero_tagline", "").
			Return(inkstudio.SiteContentEntry{Key: "hero_tagline", Value: ""}, nil)

		rec := doJSON(t, router, http.MethodPut, "/content", `{"key":"hero_tagline","value":""}`, adminSecret)
		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})
}

func TestHandler_ListTattoos(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("ListTattoos", mock.Anything, inkstudio.TattooFilter{}).
			Return([]inkstudio.Tattoo{{ID: 1, Title: "Rose"}}, nil)

		rec := doJSON(t, router, http.MethodGet, "/tattoos", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("category and featured filters", func(t *testing.T) {
		router, service := newRouter(t)
		featured := true
		service.On("ListTattoos", mock.Anything, inkstudio.TattooFilter{Category: "Realism", Featured: &featured}).
			Return([]inkstudio.Tattoo{}, nil)

		rec := doJSON(t, router, http.MethodGet, "/tattoos?category=Realism&featured=true", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("unparseable featured value ignored", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("ListTattoos", mock.Anything, inkstudio.TattooFilter{}).
			Return([]inkstudio.Tattoo{}, nil)

		rec := doJSON(t, router, http.MethodGet, "/tattoos?featured=maybe", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("empty result is a JSON array", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("ListTattoos", mock.Anything, inkstudio.TattooFilter{}).
			Return([]inkstudio.Tattoo(nil), nil)

		rec := doJSON(t, router, http.MethodGet, "/tattoos", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestHandler_CreateTattoo(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		router, service := newRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/tattoos", `{"title":"Rose"}`, adminSecret)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "title, category, and image_url are required", errorMessage(t, rec))
		service.AssertNotCalled(t, "CreateTattoo")
	})

	t.Run("created", func(t *testing.T) {
		router, service := newRouter(t)
		nt := inkstudio.NewTattoo{Title: "Rose", Category: "Realism", ImageURL: "/uploads/a.png"}
		service.On("CreateTattoo", mock.Anything, nt).Return(inkstudio.Tattoo{ID: 1, Title: "Rose"}, nil)

		rec := doJSON(t, router, http.MethodPost, "/tattoos",
			`{"title":"Rose","category":"Realism","image_url":"/uploads/a.png"}`, adminSecret)
		assert.Equal(t, http.StatusCreated, rec.Code)
		service.AssertExpectations(t)
	})
}

func TestHandler_UpdateTattoo(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := doJSON(t, router, http.MethodPut, "/tattoos", `{"title":"x"}`, adminSecret)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id is required", errorMessage(t, rec))
	})

	t.Run("not found", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("UpdateTattoo", mock.Anything, int64(9999), mock.Anything).
			Return(inkstudio.Tattoo{}, inkstudio.ErrNotFound)

		rec := doJSON(t, router, http.MethodPut, "/tattoos", `{"id":9999,"title":"x"}`, adminSecret)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Tattoo not found", errorMessage(t, rec))
	})

	t.Run("partial body decodes into patch", func(t *testing.T) {
		router, service := newRouter(t)
		title := "New"
		service.On("UpdateTattoo", mock.Anything, int64(3), inkstudio.TattooPatch{Title: &title}).
			Return(inkstudio.Tattoo{ID: 3, Title: title}, nil)

		rec := doJSON(t, router, http.MethodPut, "/tattoos", `{"id":3,"title":"New"}`, adminSecret)
		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})
}

func TestHandler_DeleteTattoo(t *testing.T) {
	t.Run("success body", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("DeleteTattoo", mock.Anything, int64(5), "/uploads/a.png").Return(nil)

		rec := doJSON(t, router, http.MethodDelete, "/tattoos", `{"id":5,"image_url":"/uploads/a.png"}`, adminSecret)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("DeleteTattoo", mock.Anything, int64(9999), "").Return(inkstudio.ErrNotFound)

		rec := doJSON(t, router, http.MethodDelete, "/tattoos", `{"id":9999}`, adminSecret)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Tattoo not found", errorMessage(t, rec))
	})
}

func TestHandler_Testimonials(t *testing.T) {
	t.Run("create missing fields", func(t *testing.T) {
		router, service := newRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/testimonials", `{"name":"Ada"}`, adminSecret)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name and text are required", errorMessage(t, rec))
		service.AssertNotCalled(t, "CreateTestimonial")
	})

	t.Run("create", func(t *testing.T) {
		router, service := newRouter(t)
		nt := inkstudio.NewTestimonial{Name: "Ada", Text: "Great work"}
		service.On("CreateTestimonial", mock.Anything, nt).Return(inkstudio.Testimonial{ID: 1}, nil)

		rec := doJSON(t, router, http.MethodPost, "/testimonials", `{"name":"Ada","text":"Great work"}`, adminSecret)
		assert.Equal(t, http.StatusCreated, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("delete not found", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("DeleteTestimonial", mock.Anything, int64(42)).Return(inkstudio.ErrNotFound)

		rec := doJSON(t, router, http.MethodDelete, "/testimonials", `{"id":42}`, adminSecret)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Testimonial not found", errorMessage(t, rec))
	})

	t.Run("list empty is a JSON array", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("ListTestimonials", mock.Anything).Return([]inkstudio.Testimonial(nil), nil)

		rec := doJSON(t, router, http.MethodGet, "/testimonials", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func multipartBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandler_Upload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("UploadImage", mock.Anything, mock.MatchedBy(func(in inkstudio.UploadInput) bool {
			return in.Filename == "rose.png" && in.ContentType == "image/png"
		}), mock.Anything).Return("/uploads/abc.png", nil)

		body, contentType := multipartBody(t, "rose.png", "image/png", "pngbytes")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set(inkhttp.AdminHeader, adminSecret)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"url":"/uploads/abc.png"}`, rec.Body.String())
	})

	t.Run("no file field", func(t *testing.T) {
		router, service := newRouter(t)

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("other", "x"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set(inkhttp.AdminHeader, adminSecret)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file provided", errorMessage(t, rec))
		service.AssertNotCalled(t, "UploadImage")
	})

	t.Run("non-image rejected", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("UploadImage", mock.Anything, mock.Anything, mock.Anything).
			Return("", inkstudio.ErrUnsupportedMedia)

		body, contentType := multipartBody(t, "doc.pdf", "application/pdf", "%PDF")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set(inkhttp.AdminHeader, adminSecret)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "File must be an image", errorMessage(t, rec))
	})

	t.Run("oversize rejected", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("UploadImage", mock.Anything, mock.Anything, mock.Anything).
			Return("", inkstudio.ErrTooLarge)

		body, contentType := multipartBody(t, "big.png", "image/png", "bytes")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set(inkhttp.AdminHeader, adminSecret)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "File size exceeds 10MB limit", errorMessage(t, rec))
	})
}

func TestHandler_DeleteImage(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		router, service := newRouter(t)

		rec := doJSON(t, router, http.MethodDelete, "/upload", `{}`, adminSecret)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "url is required", errorMessage(t, rec))
		service.AssertNotCalled(t, "DeleteImage")
	})

	t.Run("success", func(t *testing.T) {
		router, service := newRouter(t)
		service.On("DeleteImage", mock.Anything, "/uploads/abc.png").Return(nil)

		rec := doJSON(t, router, http.MethodDelete, "/upload", `{"url":"/uploads/abc.png"}`, adminSecret)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		service.AssertExpectations(t)
	})
}
