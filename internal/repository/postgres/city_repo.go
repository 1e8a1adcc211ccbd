package postgres

import (
	"gorm.io/gorm"

	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// CityRepo implements repository.CityRepository.
type CityRepo struct {
	db *gorm.DB
}

func NewCityRepo(db *gorm.DB) *CityRepo {
	return &CityRepo{db: db}
}

func (r *CityRepo) List() ([]entity.City, error) {
	var cities []entity.City
	if err := r.db.Order("id").Find(&cities).Error; err != nil {
		return nil, translate(err, "list cities")
	}
	return cities, nil
}

func (r *CityRepo) Create(city *entity.City) error {
	return translate(r.db.Create(city).Error, "create city")
}

// Update writes every column, including zero coordinates.
func (r *CityRepo) Update(city *entity.City) error {
	result := r.db.Model(&entity.City{}).
		Where("id = ?", city.ID).
		Select("name", "lat", "lng").
		Updates(city)
	return affected(result, "update city")
}

func (r *CityRepo) Delete(id uint) error {
	return affected(r.db.Delete(&entity.City{}, id), "delete city")
}
