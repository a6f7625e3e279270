package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bestemiy/inkstudio"
	inkhttp "github.com/bestemiy/inkstudio/http"
)

func TestRequireAdmin(t *testing.T) {
	guard := inkstudio.NewGuard("hunter2")

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})
	wrapped := inkhttp.RequireAdmin(guard)(next)

	t.Run("missing header", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/tattoos", nil)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("wrong secret", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/tattoos", nil)
		req.Header.Set(inkhttp.AdminHeader, "nope")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("correct secret", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/tattoos", nil)
		req.Header.Set(inkhttp.AdminHeader, "hunter2")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, called)
	})
}
