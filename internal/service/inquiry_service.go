package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	"github.com/thierryazur06/site-api/internal/verification"
)

// ActivityFeedSize is how many entries the dashboard feed shows.
const ActivityFeedSize = 10

// CodeKey normalizes an email used as a volatile code key.
func CodeKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Nom     string
	Prenom  string
	Email   string
	Objet   string
	Message string
	Code    string
}

// IsDevis reports whether the submission is a quote request.
func (in ContactInput) IsDevis() bool {
	return strings.Contains(strings.ToLower(in.Objet), "devis")
}

// InquiryService handles the public contact form and its back office views.
type InquiryService struct {
	repo  repository.InquiryRepository
	codes verification.Codes[string]
	email EmailService
}

// NewInquiryService creates the inquiry service.
func NewInquiryService(repo repository.InquiryRepository, codes verification.Codes[string], email EmailService) (*InquiryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("InquiryRepository is required for InquiryService")
	}
	if codes == nil {
		return nil, fmt.Errorf("verification codes are required for InquiryService")
	}
	if email == nil {
		return nil, fmt.Errorf("EmailService is required for InquiryService")
	}
	return &InquiryService{repo: repo, codes: codes, email: email}, nil
}

// SendConfirmationCode issues a volatile code for email and mails it. A
// second request replaces the first code.
func (s *InquiryService) SendConfirmationCode(ctx context.Context, email string) error {
	key := CodeKey(email)
	if key == "" {
		return required("email")
	}
	code, err := s.codes.Issue(ctx, key)
	if err != nil {
		return err
	}
	return s.email.SendConfirmationCode(ctx, strings.TrimSpace(email), code)
}

// SubmitContact verifies the confirmation code, records the message and
// forwards it to the site owner. A failed insert is logged and does not
// abort the submission.
func (s *InquiryService) SubmitContact(ctx context.Context, in ContactInput) error {
	if strings.TrimSpace(in.Email) == "" || in.Code == "" {
		return required("email and code")
	}

	ok, err := s.codes.Verify(ctx, CodeKey(in.Email), in.Code)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCode
	}

	if err := s.store(in); err != nil {
		zap.L().Error("failed to store contact submission", zap.Bool("devis", in.IsDevis()), zap.Error(err))
	}

	return s.email.SendContactNotification(ctx, ContactNotification{
		Nom:     in.Nom,
		Prenom:  in.Prenom,
		Email:   in.Email,
		Objet:   in.Objet,
		Message: in.Message,
	})
}

func (s *InquiryService) store(in ContactInput) error {
	if in.IsDevis() {
		return s.repo.CreateDevis(&entity.DevisAsk{
			FirstName: in.Prenom,
			LastName:  in.Nom,
			Email:     in.Email,
			Subject:   in.Objet,
			Message:   in.Message,
		})
	}
	return s.repo.CreateContact(&entity.Contact{
		FirstName: in.Prenom,
		LastName:  in.Nom,
		Email:     in.Email,
		Subject:   in.Objet,
		Message:   in.Message,
	})
}

func (s *InquiryService) ListContacts() ([]entity.Contact, error) {
	return s.repo.ListContacts(0)
}

// ListDevis lists quote requests, filtered on the replied flag when set.
func (s *InquiryService) ListDevis(replied *bool) ([]entity.DevisAsk, error) {
	return s.repo.ListDevis(repository.DevisFilter{Replied: replied})
}

func (s *InquiryService) SetDevisReplied(id uint, replied bool) error {
	return s.repo.SetDevisReplied(id, replied)
}

func (s *InquiryService) Stats() (*entity.InquiryStats, error) {
	return s.repo.Stats()
}

// RecentActivities merges the latest contacts and quote requests, newest first.
func (s *InquiryService) RecentActivities() ([]entity.Activity, error) {
	contacts, err := s.repo.ListContacts(ActivityFeedSize)
	if err != nil {
		return nil, err
	}
	devis, err := s.repo.ListDevis(repository.DevisFilter{Limit: ActivityFeedSize})
	if err != nil {
		return nil, err
	}

	feed := make([]entity.Activity, 0, len(contacts)+len(devis))
	for _, c := range contacts {
		feed = append(feed, entity.Activity{
			Type:      entity.ActivityContact,
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Subject:   c.Subject,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		})
	}
	for _, d := range devis {
		replied := d.Replied
		feed = append(feed, entity.Activity{
			Type:      entity.ActivityDevis,
			ID:        d.ID,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Email:     d.Email,
			Subject:   d.Subject,
			Message:   d.Message,
			Replied:   &replied,
			CreatedAt: d.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	if len(feed) > ActivityFeedSize {
		feed = feed[:ActivityFeedSize]
	}
	return feed, nil
}
