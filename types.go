package inkstudio

import "time"

// MaxUploadBytes is the largest accepted image upload (10 MiB).
const MaxUploadBytes = 10 << 20

// Tattoo is a single portfolio piece. Description is nullable and Featured
// is persisted as 0/1 by the repositories.
type Tattoo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTattoo holds the fields required to create a tattoo.
type NewTattoo struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Featured    bool    `json:"featured"`
}

// TattooPatch is a partial update. Nil fields are left unchanged; the set
// of pointer fields doubles as the allow-list of updatable columns.
type TattooPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	Featured    *bool   `json:"featured"`
}

// TattooFilter narrows a listing. Zero values impose no constraint;
// provided fields compose with AND.
type TattooFilter struct {
	Category string
	Featured *bool
}

// SiteContentEntry is one key/value setting used to populate site copy.
// Key is the immutable identity.
type SiteContentEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Testimonial is a customer review.
type Testimonial struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTestimonial holds the fields required to create a testimonial.
type NewTestimonial struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// UploadInput describes an incoming image upload. Size is the declared
// payload size in bytes.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
}
