package inkstudio

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Service orchestrates the catalog, site content, testimonials and image
// storage. It owns the cross-component policies: upload validation happens
// before any bytes are persisted, and tattoo deletion releases the image
// before the record is removed (fail-fast: an image-delete failure leaves
// the record in place).
type Service struct {
	tattoos      TattooRepo
	content      ContentRepo
	testimonials TestimonialRepo
	images       ImageStore
}

// NewService wires the repositories and image store into a Service.
func NewService(tattoos TattooRepo, content ContentRepo, testimonials TestimonialRepo, images ImageStore) *Service {
	return &Service{
		tattoos:      tattoos,
		content:      content,
		testimonials: testimonials,
		images:       images,
	}
}

// ListTattoos returns tattoos matching the filter, newest first.
func (s *Service) ListTattoos(ctx context.Context, f TattooFilter) ([]Tattoo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list tattoos: %w", err)
	}

	items, err := s.tattoos.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list tattoos: %w", err)
	}

	return items, nil
}

// CreateTattoo validates and inserts a new portfolio piece.
func (s *Service) CreateTattoo(ctx context.Context, nt NewTattoo) (Tattoo, error) {
	if err := ctx.Err(); err != nil {
		return Tattoo{}, fmt.Errorf("create tattoo: %w", err)
	}

	if nt.Title == "" || nt.Category == "" || nt.ImageURL == "" {
		return Tattoo{}, fmt.Errorf("create tattoo: %w: title, category, and image_url are required", ErrInvalidInput)
	}

	created, err := s.tattoos.Create(ctx, nt)
	if err != nil {
		return Tattoo{}, fmt.Errorf("create tattoo: %w", err)
	}

	return created, nil
}

// UpdateTattoo applies a partial update. Fields absent from the patch are
// left unchanged; updated_at is always refreshed.
func (s *Service) UpdateTattoo(ctx context.Context, id int64, patch TattooPatch) (Tattoo, error) {
	if err := ctx.Err(); err != nil {
		return Tattoo{}, fmt.Errorf("update tattoo: %w", err)
	}

	if id == 0 {
		return Tattoo{}, fmt.Errorf("update tattoo: %w: id is required", ErrInvalidInput)
	}

	updated, err := s.tattoos.Update(ctx, id, patch)
	if err != nil {
		return Tattoo{}, fmt.Errorf("update tattoo %d: %w", id, err)
	}

	return updated, nil
}

// DeleteTattoo removes a portfolio piece. When imageURL is provided the
// stored image is released first; if that fails the record is kept and the
// error propagates. The two steps are sequential, not transactional.
func (s *Service) DeleteTattoo(ctx context.Context, id int64, imageURL string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete tattoo: %w", err)
	}

	if id == 0 {
		return fmt.Errorf("delete tattoo: %w: id is required", ErrInvalidInput)
	}

	if _, err := s.tattoos.Get(ctx, id); err != nil {
		return fmt.Errorf("delete tattoo %d: %w", id, err)
	}

	if imageURL != "" {
		if err := s.images.Delete(ctx, imageURL); err != nil {
			return fmt.Errorf("delete tattoo %d: release image: %w", id, err)
		}
	}

	if err := s.tattoos.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tattoo %d: %w", id, err)
	}

	return nil
}

// SiteContent returns every stored content entry.
func (s *Service) SiteContent(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("site content: %w", err)
	}

	content, err := s.content.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("site content: %w", err)
	}

	return content, nil
}

// UpsertContent inserts or replaces the value for a key.
func (s *Service) UpsertContent(ctx context.Context, key, value string) (SiteContentEntry, error) {
	if err := ctx.Err(); err != nil {
		return SiteContentEntry{}, fmt.Errorf("upsert content: %w", err)
	}

	if key == "" {
		return SiteContentEntry{}, fmt.Errorf("upsert content: %w: key and value are required", ErrInvalidInput)
	}

	entry, err := s.content.Upsert(ctx, key, value)
	if err != nil {
		return SiteContentEntry{}, fmt.Errorf("upsert content %q: %w", key, err)
	}

	return entry, nil
}

// ListTestimonials returns all testimonials, newest first.
func (s *Service) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}

	items, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}

	return items, nil
}

// CreateTestimonial validates and inserts a new review.
func (s *Service) CreateTestimonial(ctx context.Context, nt NewTestimonial) (Testimonial, error) {
	if err := ctx.Err(); err != nil {
		return Testimonial{}, fmt.Errorf("create testimonial: %w", err)
	}

	if nt.Name == "" || nt.Text == "" {
		return Testimonial{}, fmt.Errorf("create testimonial: %w: name and text are required", ErrInvalidInput)
	}

	created, err := s.testimonials.Create(ctx, nt)
	if err != nil {
		return Testimonial{}, fmt.Errorf("create testimonial: %w", err)
	}

	return created, nil
}

// DeleteTestimonial removes a review.
func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}

	if id == 0 {
		return fmt.Errorf("delete testimonial: %w: id is required", ErrInvalidInput)
	}

	if err := s.testimonials.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete testimonial %d: %w", id, err)
	}

	return nil
}

// UploadImage validates the declared content type and size, then hands the
// bytes to the configured image store. Rejected uploads never reach the
// store.
func (s *Service) UploadImage(ctx context.Context, in UploadInput, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if !strings.HasPrefix(in.ContentType, "image/") {
		return "", fmt.Errorf("upload image: %w: content type %q", ErrUnsupportedMedia, in.ContentType)
	}

	if in.Size > MaxUploadBytes {
		return "", fmt.Errorf("upload image: %w: %d bytes", ErrTooLarge, in.Size)
	}

	url, err := s.images.Upload(ctx, in.Filename, in.ContentType, content)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return url, nil
}

// DeleteImage releases a stored image directly, without touching any
// record. Used by the admin console when an upload is abandoned.
func (s *Service) DeleteImage(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if url == "" {
		return fmt.Errorf("delete image: %w: url is required", ErrInvalidInput)
	}

	if err := s.images.Delete(ctx, url); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	return nil
}
