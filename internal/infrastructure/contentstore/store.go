// Package contentstore keeps admin-managed site content in process memory.
// The site deliberately carries no database: events always come from the
// ticketing provider, and the handful of releases/gallery entries the
// label curates fits in memory and is reseeded on deploy.
package contentstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/novodsign/neovision-landing/internal/domain/content"
)

var ErrNotFound = errors.New("content not found")

type Store struct {
	mu       sync.RWMutex
	releases map[uuid.UUID]content.Release
	gallery  map[uuid.UUID]content.GalleryImage
	contacts map[uuid.UUID]content.ContactSubmission
	now      func() time.Time
}

func New() *Store {
	return &Store{
		releases: make(map[uuid.UUID]content.Release),
		gallery:  make(map[uuid.UUID]content.GalleryImage),
		contacts: make(map[uuid.UUID]content.ContactSubmission),
		now:      time.Now,
	}
}

func (s *Store) ListReleases(ctx context.Context) ([]content.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]content.Release, 0, len(s.releases))
	for _, r := range s.releases {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetRelease(ctx context.Context, id uuid.UUID) (content.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.releases[id]
	if !ok {
		return content.Release{}, ErrNotFound
	}
	return r, nil
}

func (s *Store) CreateRelease(ctx context.Context, r content.Release) (content.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.New()
	r.CreatedAt = s.now()
	s.releases[r.ID] = r
	return r, nil
}

func (s *Store) UpdateRelease(ctx context.Context, r content.Release) (content.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.releases[r.ID]
	if !ok {
		return content.Release{}, ErrNotFound
	}
	r.CreatedAt = existing.CreatedAt
	s.releases[r.ID] = r
	return r, nil
}

func (s *Store) DeleteRelease(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.releases[id]; !ok {
		return ErrNotFound
	}
	delete(s.releases, id)
	return nil
}

func (s *Store) ListGallery(ctx context.Context) ([]content.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]content.GalleryImage, 0, len(s.gallery))
	for _, g := range s.gallery {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateGalleryImage(ctx context.Context, g content.GalleryImage) (content.GalleryImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = uuid.New()
	g.CreatedAt = s.now()
	s.gallery[g.ID] = g
	return g, nil
}

func (s *Store) UpdateGalleryImage(ctx context.Context, g content.GalleryImage) (content.GalleryImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.gallery[g.ID]
	if !ok {
		return content.GalleryImage{}, ErrNotFound
	}
	g.CreatedAt = existing.CreatedAt
	s.gallery[g.ID] = g
	return g, nil
}

func (s *Store) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.gallery[id]; !ok {
		return ErrNotFound
	}
	delete(s.gallery, id)
	return nil
}

func (s *Store) CreateContact(ctx context.Context, c content.ContactSubmission) (content.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New()
	c.Status = content.ContactNew
	c.CreatedAt = s.now()
	s.contacts[c.ID] = c
	return c, nil
}

func (s *Store) ListContacts(ctx context.Context) ([]content.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]content.ContactSubmission, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateContactStatus(ctx context.Context, id uuid.UUID, status content.ContactStatus, notes string) (content.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return content.ContactSubmission{}, ErrNotFound
	}
	c.Status = status
	c.Notes = notes
	s.contacts[id] = c
	return c, nil
}
