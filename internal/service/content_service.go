package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
)

// Upload is an uploaded image. Its declared content type is ignored; the
// stored type is sniffed from Content.
type Upload struct {
	Name    string
	Content []byte
}

// AboutUpdate carries the fields of an about page edit. Nil fields are left as is.
type AboutUpdate struct {
	Subtitle               *string
	HistorySectionTitle    *string
	HistorySectionContent  *string
	ValuesSectionTitle     *string
	ReviewsSectionTitle    *string
	ReviewsSectionSubtitle *string
	Image                  *Upload
}

// MetadataUpdate carries the fields of a site metadata edit.
type MetadataUpdate struct {
	Phone        *string
	ContactEmail *string
	DevisEmail   *string
	Schedules    *string
	Description  *string
	HeroImage    *Upload
	ZonesImage   *Upload
}

// ContentService manages the editable site content.
type ContentService struct {
	repo repository.SiteContentRepository
}

func NewContentService(repo repository.SiteContentRepository) (*ContentService, error) {
	if repo == nil {
		return nil, fmt.Errorf("SiteContentRepository is required for ContentService")
	}
	return &ContentService{repo: repo}, nil
}

// PublicAbout returns the about row, or the defaults when none exists yet.
func (s *ContentService) PublicAbout() (*entity.About, error) {
	about, err := s.repo.GetAbout()
	if errors.Is(err, apperrors.ErrNotFound) {
		def := entity.DefaultAbout()
		return &def, nil
	}
	return about, err
}

// PublicMetadata returns the metadata row, or the defaults when none exists yet.
func (s *ContentService) PublicMetadata() (*entity.Metadata, error) {
	metadata, err := s.repo.GetMetadata()
	if errors.Is(err, apperrors.ErrNotFound) {
		def := entity.DefaultMetadata()
		return &def, nil
	}
	return metadata, err
}

// AdminAbout returns the about row, creating it from the defaults first if needed.
func (s *ContentService) AdminAbout() (*entity.About, error) {
	about, err := s.repo.GetAbout()
	if !errors.Is(err, apperrors.ErrNotFound) {
		return about, err
	}
	def := entity.DefaultAbout()
	if err := s.repo.CreateAbout(&def); err != nil {
		return nil, err
	}
	zap.L().Info("initialized about page defaults", zap.Uint("id", def.ID))
	return &def, nil
}

// AdminMetadata returns the metadata row, creating it from the defaults first if needed.
func (s *ContentService) AdminMetadata() (*entity.Metadata, error) {
	metadata, err := s.repo.GetMetadata()
	if !errors.Is(err, apperrors.ErrNotFound) {
		return metadata, err
	}
	def := entity.DefaultMetadata()
	if err := s.repo.CreateMetadata(&def); err != nil {
		return nil, err
	}
	zap.L().Info("initialized site metadata defaults", zap.Uint("id", def.ID))
	return &def, nil
}

// UpdateAbout applies u to the existing about row. It fails with
// apperrors.ErrNotFound when the row has not been created.
func (s *ContentService) UpdateAbout(u AboutUpdate) error {
	about, err := s.repo.GetAbout()
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	setString(updates, "subtitle", u.Subtitle)
	setString(updates, "history_section_title", u.HistorySectionTitle)
	setString(updates, "history_section_content", u.HistorySectionContent)
	setString(updates, "values_section_title", u.ValuesSectionTitle)
	setString(updates, "reviews_section_title", u.ReviewsSectionTitle)
	setString(updates, "reviews_section_subtitle", u.ReviewsSectionSubtitle)
	if err := setImage(updates, "image", u.Image); err != nil {
		return err
	}
	return s.repo.UpdateAbout(about.ID, updates)
}

// UpdateMetadata applies u to the existing metadata row.
func (s *ContentService) UpdateMetadata(u MetadataUpdate) error {
	metadata, err := s.repo.GetMetadata()
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	setString(updates, "phone", u.Phone)
	setString(updates, "contact_email", u.ContactEmail)
	setString(updates, "devis_email", u.DevisEmail)
	setString(updates, "schedules", u.Schedules)
	setString(updates, "description", u.Description)
	if err := setImage(updates, "image_hero", u.HeroImage); err != nil {
		return err
	}
	if err := setImage(updates, "image_zones", u.ZonesImage); err != nil {
		return err
	}
	return s.repo.UpdateMetadata(metadata.ID, updates)
}

func (s *ContentService) ListAboutValues() ([]entity.AboutValue, error) {
	return s.repo.ListAboutValues()
}

// CreateAboutValue attaches a value to the about row, which must exist.
func (s *ContentService) CreateAboutValue(title, description string) (*entity.AboutValue, error) {
	about, err := s.repo.GetAbout()
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrAboutMissing
	}
	if err != nil {
		return nil, err
	}
	value := &entity.AboutValue{AboutID: about.ID, Title: title, Description: description}
	if err := s.repo.CreateAboutValue(value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *ContentService) UpdateAboutValue(id uint, title, description string) error {
	if id == 0 {
		return required("id")
	}
	return s.repo.UpdateAboutValue(&entity.AboutValue{ID: id, Title: title, Description: description})
}

func (s *ContentService) DeleteAboutValue(id uint) error {
	return s.repo.DeleteAboutValue(id)
}

func setString(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = *v
	}
}

// setImage sniffs the upload and records the four image columns under prefix.
func setImage(updates map[string]interface{}, prefix string, u *Upload) error {
	if u == nil || u.Name == "" {
		return nil
	}
	mt := mimetype.Detect(u.Content)
	if !strings.HasPrefix(mt.String(), "image/") {
		return ErrInvalidImage
	}
	updates[prefix+"_name"] = u.Name
	updates[prefix+"_type"] = mt.String()
	updates[prefix+"_size"] = float64(len(u.Content))
	updates[prefix+"_content"] = u.Content
	return nil
}
