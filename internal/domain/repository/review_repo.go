package repository

import "github.com/thierryazur06/site-api/internal/domain/entity"

// ReviewRepository defines access to customer reviews.
type ReviewRepository interface {
	Create(review *entity.Review) error
	// ListApproved returns approved reviews, oldest first.
	ListApproved() ([]entity.Review, error)
	// ListWithCity returns every review with its city name, newest first.
	ListWithCity() ([]entity.ReviewWithCity, error)
	SetApproved(id uint, approved bool) error
}
