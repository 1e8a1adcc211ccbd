package repository

import "github.com/thierryazur06/site-api/internal/domain/entity"

// SiteContentRepository defines access to the editable page content.
// GetAbout and GetMetadata return apperrors.ErrNotFound while the
// singleton row does not exist yet.
type SiteContentRepository interface {
	GetAbout() (*entity.About, error)
	CreateAbout(about *entity.About) error
	UpdateAbout(id uint, updates map[string]interface{}) error

	GetMetadata() (*entity.Metadata, error)
	CreateMetadata(metadata *entity.Metadata) error
	UpdateMetadata(id uint, updates map[string]interface{}) error

	ListAboutValues() ([]entity.AboutValue, error)
	CreateAboutValue(value *entity.AboutValue) error
	UpdateAboutValue(value *entity.AboutValue) error
	DeleteAboutValue(id uint) error
}
