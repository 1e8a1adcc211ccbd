package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
	"github.com/thierryazur06/site-api/internal/verification"
)

// MockUserRepository implements repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]entity.User, error) {
	args := m.Called()
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(userID uint, newPassword string, mustChange bool) error {
	args := m.Called(userID, newPassword, mustChange)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEmailService implements EmailService.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendConfirmationCode(ctx context.Context, to, code string) error {
	return m.Called(to, code).Error(0)
}

func (m *MockEmailService) SendLoginCode(ctx context.Context, to, code string) error {
	return m.Called(to, code).Error(0)
}

func (m *MockEmailService) SendPasswordResetCode(ctx context.Context, to, code string) error {
	return m.Called(to, code).Error(0)
}

func (m *MockEmailService) SendWelcome(ctx context.Context, to, firstName, password string) error {
	return m.Called(to, firstName, password).Error(0)
}

func (m *MockEmailService) SendContactNotification(ctx context.Context, n ContactNotification) error {
	return m.Called(n).Error(0)
}

// MockInquiryRepository implements repository.InquiryRepository.
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) CreateContact(contact *entity.Contact) error {
	return m.Called(contact).Error(0)
}

func (m *MockInquiryRepository) CreateDevis(devis *entity.DevisAsk) error {
	return m.Called(devis).Error(0)
}

func (m *MockInquiryRepository) ListContacts(limit int) ([]entity.Contact, error) {
	args := m.Called(limit)
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockInquiryRepository) ListDevis(filter repository.DevisFilter) ([]entity.DevisAsk, error) {
	args := m.Called(filter)
	return args.Get(0).([]entity.DevisAsk), args.Error(1)
}

func (m *MockInquiryRepository) SetDevisReplied(id uint, replied bool) error {
	return m.Called(id, replied).Error(0)
}

func (m *MockInquiryRepository) Stats() (*entity.InquiryStats, error) {
	args := m.Called()
	return args.Get(0).(*entity.InquiryStats), args.Error(1)
}

// MockReviewRepository implements repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *entity.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockReviewRepository) ListApproved() ([]entity.Review, error) {
	args := m.Called()
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) ListWithCity() ([]entity.ReviewWithCity, error) {
	args := m.Called()
	return args.Get(0).([]entity.ReviewWithCity), args.Error(1)
}

func (m *MockReviewRepository) SetApproved(id uint, approved bool) error {
	return m.Called(id, approved).Error(0)
}

// MockSiteContentRepository implements repository.SiteContentRepository.
type MockSiteContentRepository struct {
	mock.Mock
}

func (m *MockSiteContentRepository) GetAbout() (*entity.About, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.About), args.Error(1)
}

func (m *MockSiteContentRepository) CreateAbout(about *entity.About) error {
	return m.Called(about).Error(0)
}

func (m *MockSiteContentRepository) UpdateAbout(id uint, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

func (m *MockSiteContentRepository) GetMetadata() (*entity.Metadata, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Metadata), args.Error(1)
}

func (m *MockSiteContentRepository) CreateMetadata(metadata *entity.Metadata) error {
	return m.Called(metadata).Error(0)
}

func (m *MockSiteContentRepository) UpdateMetadata(id uint, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

func (m *MockSiteContentRepository) ListAboutValues() ([]entity.AboutValue, error) {
	args := m.Called()
	return args.Get(0).([]entity.AboutValue), args.Error(1)
}

func (m *MockSiteContentRepository) CreateAboutValue(value *entity.AboutValue) error {
	return m.Called(value).Error(0)
}

func (m *MockSiteContentRepository) UpdateAboutValue(value *entity.AboutValue) error {
	return m.Called(value).Error(0)
}

func (m *MockSiteContentRepository) DeleteAboutValue(id uint) error {
	return m.Called(id).Error(0)
}

type stubTokens struct{}

func (stubTokens) GenerateToken(userID uint, email string) (string, error) {
	return "token-for-" + email, nil
}

const testCode = "123456"

func fixedCodes[K comparable](t *testing.T) *verification.Service[K] {
	t.Helper()
	svc, err := verification.NewService[K](verification.NewMemoryStore[K](),
		verification.WithGenerator(func() (string, error) { return testCode, nil }))
	require.NoError(t, err)
	return svc
}

func hashedUser(t *testing.T, id uint, email, password string, mustChange bool) *entity.User {
	t.Helper()
	hashed, err := entity.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{ID: id, Email: email, FirstName: "Thierry", LastName: "Azur", Password: hashed, MustChangePassword: mustChange}
}
