package repository

import "github.com/thierryazur06/site-api/internal/domain/entity"

// DevisFilter narrows a quote request listing. A nil Replied lists everything.
type DevisFilter struct {
	Replied *bool
	Limit   int
}

// InquiryRepository defines access to contact messages and quote requests.
type InquiryRepository interface {
	CreateContact(contact *entity.Contact) error
	CreateDevis(devis *entity.DevisAsk) error
	// ListContacts returns contacts newest first. A limit <= 0 means no limit.
	ListContacts(limit int) ([]entity.Contact, error)
	// ListDevis returns quote requests newest first.
	ListDevis(filter DevisFilter) ([]entity.DevisAsk, error)
	SetDevisReplied(id uint, replied bool) error
	Stats() (*entity.InquiryStats, error)
}
