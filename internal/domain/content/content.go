package content

import (
	"time"

	"github.com/google/uuid"
)

// Site-managed content: label releases, gallery images and contact-form
// submissions. Unlike events this is not provider-backed; it lives in the
// admin-managed store.

type Release struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	CoverURL   string     `json:"coverUrl,omitempty"`
	StreamURL  string     `json:"streamUrl,omitempty"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type GalleryImage struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	EventID   int64     `json:"eventId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactStatus string

const (
	ContactNew      ContactStatus = "NEW"
	ContactRead     ContactStatus = "READ"
	ContactAnswered ContactStatus = "ANSWERED"
)

type ContactSubmission struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
