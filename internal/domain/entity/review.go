package entity

import "time"

// Review customer types.
const (
	ReviewTypeIndividual   = "particulier"
	ReviewTypeProfessional = "professionnel"
	ReviewTypeBuilding     = "immeuble"
	ReviewTypeCoOwnership  = "copropriete"
)

// ReviewTypes lists the accepted values of Review.Type.
var ReviewTypes = []string{ReviewTypeIndividual, ReviewTypeProfessional, ReviewTypeBuilding, ReviewTypeCoOwnership}

// Review is a customer note. It stays hidden until an admin approves it.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"column:fullname;size:255;not null" json:"fullName"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	CityID    uint      `gorm:"not null;index" json:"cityId"`
	Message   string    `gorm:"type:text" json:"message"`
	Note      float64   `gorm:"not null" json:"note"`
	Approved  bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the legacy table name.
func (Review) TableName() string {
	return "notes"
}

// ReviewWithCity is the admin listing row, joined with the city name.
type ReviewWithCity struct {
	Review
	CityName string `json:"cityName"`
}

// IsValidReviewType reports whether t is one of ReviewTypes.
func IsValidReviewType(t string) bool {
	for _, rt := range ReviewTypes {
		if rt == t {
			return true
		}
	}
	return false
}
