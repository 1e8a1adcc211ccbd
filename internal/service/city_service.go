package service

import (
	"fmt"
	"strings"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
)

// CityService manages the service-area cities.
type CityService struct {
	repo repository.CityRepository
}

func NewCityService(repo repository.CityRepository) (*CityService, error) {
	if repo == nil {
		return nil, fmt.Errorf("CityRepository is required for CityService")
	}
	return &CityService{repo: repo}, nil
}

func (s *CityService) List() ([]entity.City, error) {
	return s.repo.List()
}

func (s *CityService) Create(name string, lat, lng float64) (*entity.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, required("name")
	}
	city := &entity.City{Name: name, Lat: lat, Lng: lng}
	if err := s.repo.Create(city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *CityService) Update(id uint, name string, lat, lng float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return required("name")
	}
	return s.repo.Update(&entity.City{ID: id, Name: name, Lat: lat, Lng: lng})
}

func (s *CityService) Delete(id uint) error {
	return s.repo.Delete(id)
}
