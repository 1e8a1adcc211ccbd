package postgres

import (
	"gorm.io/gorm"

	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// ReviewRepo implements repository.ReviewRepository.
type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(review *entity.Review) error {
	return translate(r.db.Create(review).Error, "create review")
}

func (r *ReviewRepo) ListApproved() ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.Where("approved = ?", true).Order("created_at ASC, id ASC").Find(&reviews).Error
	if err != nil {
		return nil, translate(err, "list approved reviews")
	}
	return reviews, nil
}

func (r *ReviewRepo) ListWithCity() ([]entity.ReviewWithCity, error) {
	var rows []entity.ReviewWithCity
	err := r.db.Model(&entity.Review{}).
		Select("notes.*, cities.name AS city_name").
		Joins("LEFT JOIN cities ON cities.id = notes.city_id").
		Order("notes.created_at DESC, notes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "list reviews")
	}
	return rows, nil
}

func (r *ReviewRepo) SetApproved(id uint, approved bool) error {
	result := r.db.Model(&entity.Review{}).Where("id = ?", id).Update("approved", approved)
	return affected(result, "update review approval")
}
