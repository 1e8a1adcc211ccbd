package repository

import "github.com/thierryazur06/site-api/internal/domain/entity"

// CityRepository defines access to service-area cities.
type CityRepository interface {
	List() ([]entity.City, error)
	Create(city *entity.City) error
	// Update overwrites name and coordinates. Unknown ids yield apperrors.ErrNotFound.
	Update(city *entity.City) error
	Delete(id uint) error
}
