package entity

// Metadata is the singleton row holding the site contact details and images.
type Metadata struct {
	ID                uint     `gorm:"primaryKey"`
	Phone             string   `gorm:"size:20;not null"`
	ContactEmail      string   `gorm:"size:255;not null"`
	DevisEmail        string   `gorm:"size:255;not null"`
	Schedules         string   `gorm:"size:255;not null"`
	Description       *string  `gorm:"type:text"`
	ImageHeroName     *string  `gorm:"size:255"`
	ImageHeroSize     *float64
	ImageHeroType     *string  `gorm:"size:50"`
	ImageHeroContent  []byte
	ImageZonesName    *string  `gorm:"size:255"`
	ImageZonesSize    *float64
	ImageZonesType    *string  `gorm:"size:50"`
	ImageZonesContent []byte
}

func (Metadata) TableName() string {
	return "metadata"
}

// DefaultMetadata returns the values used before an admin edits the site.
func DefaultMetadata() Metadata {
	return Metadata{
		Phone:        "00 00 00 00 00",
		ContactEmail: "contact@example.com",
		DevisEmail:   "devis@example.com",
		Schedules:    "Lundi - Vendredi: 9h - 18h",
	}
}

// About is the singleton row of the about page.
type About struct {
	ID                     uint     `gorm:"primaryKey"`
	Subtitle               string   `gorm:"size:255;not null"`
	HistorySectionTitle    string   `gorm:"size:255;not null"`
	HistorySectionContent  string   `gorm:"type:text;not null"`
	ValuesSectionTitle     string   `gorm:"size:255;not null"`
	ReviewsSectionTitle    string   `gorm:"size:255;not null;default:'Ils recommandent Thierry Azur 06'"`
	ReviewsSectionSubtitle string   `gorm:"size:255;not null;default:'Avis clients sur Google'"`
	ImageName              *string  `gorm:"size:255"`
	ImageSize              *float64
	ImageType              *string  `gorm:"size:50"`
	ImageContent           []byte
}

func (About) TableName() string {
	return "about"
}

// DefaultAbout returns the about page shown before an admin edits it.
func DefaultAbout() About {
	return About{
		Subtitle:               "Notre expertise à votre service",
		HistorySectionTitle:    "Notre Histoire",
		HistorySectionContent:  "Contenu par défaut de notre histoire...",
		ValuesSectionTitle:     "Nos Valeurs",
		ReviewsSectionTitle:    "Ils recommandent Thierry Azur 06",
		ReviewsSectionSubtitle: "Avis clients sur Google",
	}
}

// AboutValue is one item of the "values" section of the about page.
type AboutValue struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AboutID     uint   `gorm:"column:about_id;not null;index" json:"about_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (AboutValue) TableName() string {
	return "about_values"
}
