package postgres

import (
	"gorm.io/gorm"

	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// SiteContentRepo implements repository.SiteContentRepository. About and
// metadata are singleton tables: the first row is the live one.
type SiteContentRepo struct {
	db *gorm.DB
}

func NewSiteContentRepo(db *gorm.DB) *SiteContentRepo {
	return &SiteContentRepo{db: db}
}

func (r *SiteContentRepo) GetAbout() (*entity.About, error) {
	var about entity.About
	if err := r.db.Order("id").First(&about).Error; err != nil {
		return nil, translate(err, "get about")
	}
	return &about, nil
}

func (r *SiteContentRepo) CreateAbout(about *entity.About) error {
	return translate(r.db.Create(about).Error, "create about")
}

func (r *SiteContentRepo) UpdateAbout(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return translate(r.db.Model(&entity.About{}).Where("id = ?", id).Updates(updates).Error, "update about")
}

func (r *SiteContentRepo) GetMetadata() (*entity.Metadata, error) {
	var metadata entity.Metadata
	if err := r.db.Order("id").First(&metadata).Error; err != nil {
		return nil, translate(err, "get metadata")
	}
	return &metadata, nil
}

func (r *SiteContentRepo) CreateMetadata(metadata *entity.Metadata) error {
	return translate(r.db.Create(metadata).Error, "create metadata")
}

func (r *SiteContentRepo) UpdateMetadata(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return translate(r.db.Model(&entity.Metadata{}).Where("id = ?", id).Updates(updates).Error, "update metadata")
}

func (r *SiteContentRepo) ListAboutValues() ([]entity.AboutValue, error) {
	var values []entity.AboutValue
	if err := r.db.Order("id").Find(&values).Error; err != nil {
		return nil, translate(err, "list about values")
	}
	return values, nil
}

func (r *SiteContentRepo) CreateAboutValue(value *entity.AboutValue) error {
	return translate(r.db.Create(value).Error, "create about value")
}

func (r *SiteContentRepo) UpdateAboutValue(value *entity.AboutValue) error {
	result := r.db.Model(&entity.AboutValue{}).
		Where("id = ?", value.ID).
		Updates(map[string]interface{}{"title": value.Title, "description": value.Description})
	return affected(result, "update about value")
}

func (r *SiteContentRepo) DeleteAboutValue(id uint) error {
	return affected(r.db.Delete(&entity.AboutValue{}, id), "delete about value")
}
