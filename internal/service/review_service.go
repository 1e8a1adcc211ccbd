package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	"github.com/thierryazur06/site-api/internal/verification"
)

// ReviewInput is a public review submission.
type ReviewInput struct {
	FullName string
	Email    string
	Type     string
	CityID   uint
	Message  string
	Note     float64
	Code     string
}

// ReviewService handles customer reviews and their moderation.
type ReviewService struct {
	repo  repository.ReviewRepository
	codes verification.Codes[string]
}

// NewReviewService creates the review service.
func NewReviewService(repo repository.ReviewRepository, codes verification.Codes[string]) (*ReviewService, error) {
	if repo == nil {
		return nil, fmt.Errorf("ReviewRepository is required for ReviewService")
	}
	if codes == nil {
		return nil, fmt.Errorf("verification codes are required for ReviewService")
	}
	return &ReviewService{repo: repo, codes: codes}, nil
}

// Submit verifies the emailed code and stores the review unapproved.
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*entity.Review, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FullName == "" || in.Email == "" || in.Type == "" || in.CityID == 0 || in.Note == 0 || in.Code == "" {
		return nil, required("fullName, email, type, cityId, note and code")
	}
	if !entity.IsValidReviewType(in.Type) {
		return nil, ErrInvalidReviewType
	}

	ok, err := s.codes.Verify(ctx, CodeKey(in.Email), in.Code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCode
	}

	review := &entity.Review{
		FullName: in.FullName,
		Email:    in.Email,
		Type:     in.Type,
		CityID:   in.CityID,
		Message:  in.Message,
		Note:     in.Note,
		Approved: false,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListApproved() ([]entity.Review, error) {
	return s.repo.ListApproved()
}

func (s *ReviewService) ListAll() ([]entity.ReviewWithCity, error) {
	return s.repo.ListWithCity()
}

func (s *ReviewService) SetApproved(id uint, approved bool) error {
	return s.repo.SetApproved(id, approved)
}
