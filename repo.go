package inkstudio

import (
	"context"
	"io"
)

// TattooRepo manages persistence for portfolio pieces.
//
// All methods accept a context for cancellation and timeout control.
// Implementations must be safe for concurrent use; concurrent writes to
// the same id resolve last-write-wins at the storage engine.
type TattooRepo interface {
	// Get retrieves a tattoo by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id int64) (Tattoo, error)

	// List returns tattoos matching every provided filter field, ordered
	// by created_at descending.
	List(ctx context.Context, f TattooFilter) ([]Tattoo, error)

	// Create inserts a new tattoo and returns it with its assigned id and
	// timestamps.
	Create(ctx context.Context, nt NewTattoo) (Tattoo, error)

	// Update applies the non-nil fields of patch to an existing tattoo and
	// refreshes updated_at. Returns ErrNotFound if absent.
	Update(ctx context.Context, id int64, patch TattooPatch) (Tattoo, error)

	// Delete removes a tattoo. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

// ContentRepo manages the flat key→value site-content table.
type ContentRepo interface {
	// All returns every stored entry as a key→value mapping.
	All(ctx context.Context) (map[string]string, error)

	// Upsert inserts the entry or, if key exists, replaces its value and
	// refreshes updated_at. Each call replaces the entire value.
	Upsert(ctx context.Context, key, value string) (SiteContentEntry, error)
}

// TestimonialRepo manages customer reviews.
type TestimonialRepo interface {
	// List returns all testimonials ordered by created_at descending.
	List(ctx context.Context) ([]Testimonial, error)

	// Create inserts a new testimonial and returns it with its assigned id.
	Create(ctx context.Context, nt NewTestimonial) (Testimonial, error)

	// Delete removes a testimonial. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

// ImageStore stores and releases uploaded binary assets. The backend is
// selected once at process start (see the imagestore package); callers
// never branch on the variant.
type ImageStore interface {
	// Upload persists content and returns the URL the image is served
	// from. The local backend returns a root-relative URL, the remote
	// backend a fully-qualified one. The original file extension is
	// preserved in the generated name.
	Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error)

	// Delete releases the asset behind a URL previously returned by
	// Upload. The local backend treats a missing file as already deleted;
	// any other failure propagates.
	Delete(ctx context.Context, url string) error
}
