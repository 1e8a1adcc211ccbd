package entity

import "time"

// Contact is a general message sent through the public contact form.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"column:firstname;size:255;not null" json:"firstName"`
	LastName  string    `gorm:"column:lastname;size:255;not null" json:"lastName"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

// DevisAsk is a quote request. Contact form messages whose subject
// mentions "devis" are stored here instead of in contacts.
type DevisAsk struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"column:firstname;size:255;not null" json:"firstName"`
	LastName  string    `gorm:"column:lastname;size:255;not null" json:"lastName"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Replied   bool      `gorm:"not null;default:false" json:"replied"`
	CreatedAt time.Time `json:"createdAt"`
}

func (DevisAsk) TableName() string {
	return "devis_asks"
}

// Activity kinds.
const (
	ActivityContact = "contact"
	ActivityDevis   = "devis"
)

// Activity is one entry of the admin dashboard feed.
type Activity struct {
	Type      string    `json:"type"`
	ID        uint      `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Replied   *bool     `json:"replied,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// InquiryStats counts stored submissions.
type InquiryStats struct {
	Contacts int64 `json:"contacts"`
	Devis    int64 `json:"devis"`
}
