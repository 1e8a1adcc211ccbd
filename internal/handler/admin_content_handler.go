package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thierryazur06/site-api/internal/handler/dto"
	"github.com/thierryazur06/site-api/internal/service"
)

// AdminContentHandler serves the back office editors: cities, review
// moderation and the about and metadata pages.
type AdminContentHandler struct {
	content *service.ContentService
	cities  *service.CityService
	reviews *service.ReviewService
}

func NewAdminContentHandler(content *service.ContentService, cities *service.CityService, reviews *service.ReviewService) *AdminContentHandler {
	return &AdminContentHandler{content: content, cities: cities, reviews: reviews}
}

type CityRequest struct {
	Name string  `json:"name" binding:"required"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type ReviewApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type AboutValueRequest struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *AdminContentHandler) CreateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "name is required")
		return
	}
	city, err := h.cities.Create(req.Name, req.Lat, req.Lng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": city.ID})
}

func (h *AdminContentHandler) UpdateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "name is required")
		return
	}
	if err := h.cities.Update(c.GetUint("cityID"), req.Name, req.Lat, req.Lng); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminContentHandler) DeleteCity(c *gin.Context) {
	if err := h.cities.Delete(c.GetUint("cityID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListReviews returns every review with its city name, newest first.
func (h *AdminContentHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

func (h *AdminContentHandler) SetReviewApproved(c *gin.Context) {
	var req ReviewApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "approved is required")
		return
	}
	if err := h.reviews.SetApproved(c.GetUint("reviewID"), *req.Approved); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAbout returns the about row, creating the defaults on first access.
func (h *AdminContentHandler) GetAbout(c *gin.Context) {
	about, err := h.content.AdminAbout()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAboutResponse(about))
}

func (h *AdminContentHandler) UpdateAbout(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondValidation(c, "Missing form data")
		return
	}
	image, err := readUpload(form, "imageAbout")
	if err != nil {
		respondValidation(c, err.Error())
		return
	}

	err = h.content.UpdateAbout(service.AboutUpdate{
		Subtitle:               formValue(form, "subtitle"),
		HistorySectionTitle:    formValue(form, "historySectionTitle"),
		HistorySectionContent:  formValue(form, "historySectionContent"),
		ValuesSectionTitle:     formValue(form, "valuesSectionTitle"),
		ReviewsSectionTitle:    formValue(form, "reviewsSectionTitle"),
		ReviewsSectionSubtitle: formValue(form, "reviewsSectionSubtitle"),
		Image:                  image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMetadata returns the metadata row, creating the defaults on first access.
func (h *AdminContentHandler) GetMetadata(c *gin.Context) {
	metadata, err := h.content.AdminMetadata()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMetadataResponse(metadata))
}

func (h *AdminContentHandler) UpdateMetadata(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondValidation(c, "Missing form data")
		return
	}
	hero, err := readUpload(form, "imageHero")
	if err != nil {
		respondValidation(c, err.Error())
		return
	}
	zones, err := readUpload(form, "imageZones")
	if err != nil {
		respondValidation(c, err.Error())
		return
	}

	err = h.content.UpdateMetadata(service.MetadataUpdate{
		Phone:        formValue(form, "phone"),
		ContactEmail: formValue(form, "contactEmail"),
		DevisEmail:   formValue(form, "devisEmail"),
		Schedules:    formValue(form, "schedules"),
		Description:  formValue(form, "description"),
		HeroImage:    hero,
		ZonesImage:   zones,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminContentHandler) ListAboutValues(c *gin.Context) {
	values, err := h.content.ListAboutValues()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(values))
}

func (h *AdminContentHandler) CreateAboutValue(c *gin.Context) {
	var req AboutValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data")
		return
	}
	if _, err := h.content.CreateAboutValue(req.Title, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminContentHandler) UpdateAboutValue(c *gin.Context) {
	var req AboutValueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		respondValidation(c, "Missing ID")
		return
	}
	if err := h.content.UpdateAboutValue(req.ID, req.Title, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAboutValue takes the id from the query string: ?id=3.
func (h *AdminContentHandler) DeleteAboutValue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		respondValidation(c, "Invalid ID")
		return
	}
	if err := h.content.DeleteAboutValue(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// readUpload returns nil when no file was sent under key.
func readUpload(form *multipart.Form, key string) (*service.Upload, error) {
	files := form.File[key]
	if len(files) == 0 || files[0].Filename == "" {
		return nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot read %s", key)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s", key)
	}
	return &service.Upload{Name: fh.Filename, Content: content}, nil
}
