package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/novodsign/neovision-landing/internal/domain/content"
)

type ContentRepo interface {
	ListReleases(ctx context.Context) ([]content.Release, error)
	GetRelease(ctx context.Context, id uuid.UUID) (content.Release, error)
	CreateRelease(ctx context.Context, r content.Release) (content.Release, error)
	UpdateRelease(ctx context.Context, r content.Release) (content.Release, error)
	DeleteRelease(ctx context.Context, id uuid.UUID) error

	ListGallery(ctx context.Context) ([]content.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, g content.GalleryImage) (content.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, g content.GalleryImage) (content.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id uuid.UUID) error

	CreateContact(ctx context.Context, c content.ContactSubmission) (content.ContactSubmission, error)
	ListContacts(ctx context.Context) ([]content.ContactSubmission, error)
	UpdateContactStatus(ctx context.Context, id uuid.UUID, status content.ContactStatus, notes string) (content.ContactSubmission, error)
}

type ContentService struct {
	repo ContentRepo
}

func NewContentService(repo ContentRepo) *ContentService {
	return &ContentService{repo: repo}
}

func (s *ContentService) ListReleases(ctx context.Context) ([]content.Release, error) {
	return s.repo.ListReleases(ctx)
}

func (s *ContentService) GetRelease(ctx context.Context, id uuid.UUID) (content.Release, error) {
	return s.repo.GetRelease(ctx, id)
}

func (s *ContentService) CreateRelease(ctx context.Context, r content.Release) (content.Release, error) {
	return s.repo.CreateRelease(ctx, r)
}

func (s *ContentService) UpdateRelease(ctx context.Context, r content.Release) (content.Release, error) {
	return s.repo.UpdateRelease(ctx, r)
}

func (s *ContentService) DeleteRelease(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRelease(ctx, id)
}

func (s *ContentService) ListGallery(ctx context.Context) ([]content.GalleryImage, error) {
	return s.repo.ListGallery(ctx)
}

func (s *ContentService) CreateGalleryImage(ctx context.Context, g content.GalleryImage) (content.GalleryImage, error) {
	return s.repo.CreateGalleryImage(ctx, g)
}

func (s *ContentService) UpdateGalleryImage(ctx context.Context, g content.GalleryImage) (content.GalleryImage, error) {
	return s.repo.UpdateGalleryImage(ctx, g)
}

func (s *ContentService) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGalleryImage(ctx, id)
}

func (s *ContentService) SubmitContact(ctx context.Context, c content.ContactSubmission) (content.ContactSubmission, error) {
	return s.repo.CreateContact(ctx, c)
}

func (s *ContentService) ListContacts(ctx context.Context) ([]content.ContactSubmission, error) {
	return s.repo.ListContacts(ctx)
}

func (s *ContentService) UpdateContactStatus(ctx context.Context, id uuid.UUID, status content.ContactStatus, notes string) (content.ContactSubmission, error) {
	return s.repo.UpdateContactStatus(ctx, id, status, notes)
}
