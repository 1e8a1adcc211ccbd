package entity

// City is a service area shown on the site map and referenced by reviews.
type City struct {
	ID   uint    `gorm:"primaryKey" json:"id"`
	Name string  `gorm:"size:255;not null" json:"name"`
	Lat  float64 `gorm:"not null;default:0" json:"lat"`
	Lng  float64 `gorm:"not null;default:0" json:"lng"`
}

func (City) TableName() string {
	return "cities"
}
