package postgres

import (
	"gorm.io/gorm"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
)

// InquiryRepo implements repository.InquiryRepository over the contacts
// and devis_asks tables.
type InquiryRepo struct {
	db *gorm.DB
}

func NewInquiryRepo(db *gorm.DB) *InquiryRepo {
	return &InquiryRepo{db: db}
}

func (r *InquiryRepo) CreateContact(contact *entity.Contact) error {
	return translate(r.db.Create(contact).Error, "create contact")
}

func (r *InquiryRepo) CreateDevis(devis *entity.DevisAsk) error {
	return translate(r.db.Create(devis).Error, "create devis")
}

func (r *InquiryRepo) ListContacts(limit int) ([]entity.Contact, error) {
	var contacts []entity.Contact
	q := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&contacts).Error; err != nil {
		return nil, translate(err, "list contacts")
	}
	return contacts, nil
}

func (r *InquiryRepo) ListDevis(filter repository.DevisFilter) ([]entity.DevisAsk, error) {
	var devis []entity.DevisAsk
	q := r.db.Order("created_at DESC, id DESC")
	if filter.Replied != nil {
		q = q.Where("replied = ?", *filter.Replied)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&devis).Error; err != nil {
		return nil, translate(err, "list devis")
	}
	return devis, nil
}

func (r *InquiryRepo) SetDevisReplied(id uint, replied bool) error {
	result := r.db.Model(&entity.DevisAsk{}).Where("id = ?", id).Update("replied", replied)
	return affected(result, "update devis")
}

func (r *InquiryRepo) Stats() (*entity.InquiryStats, error) {
	var stats entity.InquiryStats
	if err := r.db.Model(&entity.Contact{}).Count(&stats.Contacts).Error; err != nil {
		return nil, translate(err, "count contacts")
	}
	if err := r.db.Model(&entity.DevisAsk{}).Count(&stats.Devis).Error; err != nil {
		return nil, translate(err, "count devis")
	}
	return &stats, nil
}
