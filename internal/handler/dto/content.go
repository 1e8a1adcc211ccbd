// Package dto holds the JSON shapes of the site API responses.
package dto

import (
	"encoding/base64"

	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// DataURL inlines an image as data:{type};base64,... or returns nil when
// no image is stored.
func DataURL(contentType *string, content []byte) *string {
	if contentType == nil || len(content) == 0 {
		return nil
	}
	url := "data:" + *contentType + ";base64," + base64.StdEncoding.EncodeToString(content)
	return &url
}

type AboutResponse struct {
	ID                     uint     `json:"id"`
	Subtitle               string   `json:"subtitle"`
	HistorySectionTitle    string   `json:"historySectionTitle"`
	HistorySectionContent  string   `json:"historySectionContent"`
	ValuesSectionTitle     string   `json:"valuesSectionTitle"`
	ReviewsSectionTitle    string   `json:"reviewsSectionTitle"`
	ReviewsSectionSubtitle string   `json:"reviewsSectionSubtitle"`
	ImageName              *string  `json:"imageName"`
	ImageSize              *float64 `json:"imageSize"`
	ImageType              *string  `json:"imageType"`
	Image                  *string  `json:"image"`
}

func NewAboutResponse(a *entity.About) AboutResponse {
	return AboutResponse{
		ID:                     a.ID,
		Subtitle:               a.Subtitle,
		HistorySectionTitle:    a.HistorySectionTitle,
		HistorySectionContent:  a.HistorySectionContent,
		ValuesSectionTitle:     a.ValuesSectionTitle,
		ReviewsSectionTitle:    a.ReviewsSectionTitle,
		ReviewsSectionSubtitle: a.ReviewsSectionSubtitle,
		ImageName:              a.ImageName,
		ImageSize:              a.ImageSize,
		ImageType:              a.ImageType,
		Image:                  DataURL(a.ImageType, a.ImageContent),
	}
}

type MetadataResponse struct {
	ID           uint    `json:"id"`
	Phone        string  `json:"phone"`
	ContactEmail string  `json:"contactEmail"`
	DevisEmail   string  `json:"devisEmail"`
	Schedules    string  `json:"schedules"`
	Description  *string `json:"description"`
	ImageHero    *string `json:"imageHero"`
	ImageZones   *string `json:"imageZones"`
}

func NewMetadataResponse(m *entity.Metadata) MetadataResponse {
	return MetadataResponse{
		ID:           m.ID,
		Phone:        m.Phone,
		ContactEmail: m.ContactEmail,
		DevisEmail:   m.DevisEmail,
		Schedules:    m.Schedules,
		Description:  m.Description,
		ImageHero:    DataURL(m.ImageHeroType, m.ImageHeroContent),
		ImageZones:   DataURL(m.ImageZonesType, m.ImageZonesContent),
	}
}
