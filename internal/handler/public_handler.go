package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thierryazur06/site-api/internal/handler/dto"
	"github.com/thierryazur06/site-api/internal/service"
)

// PublicHandler serves the read-only site data.
type PublicHandler struct {
	content *service.ContentService
	cities  *service.CityService
	reviews *service.ReviewService
}

func NewPublicHandler(content *service.ContentService, cities *service.CityService, reviews *service.ReviewService) *PublicHandler {
	return &PublicHandler{content: content, cities: cities, reviews: reviews}
}

func (h *PublicHandler) GetAbout(c *gin.Context) {
	about, err := h.content.PublicAbout()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAboutResponse(about))
}

func (h *PublicHandler) GetMetadata(c *gin.Context) {
	metadata, err := h.content.PublicMetadata()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMetadataResponse(metadata))
}

func (h *PublicHandler) GetAboutValues(c *gin.Context) {
	values, err := h.content.ListAboutValues()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(values))
}

func (h *PublicHandler) GetCities(c *gin.Context) {
	cities, err := h.cities.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(cities))
}

// GetReviews lists approved reviews, oldest first.
func (h *PublicHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviews.ListApproved()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

// nonNil renders an empty list as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

