// controllers/review.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"aquacare-backend/config"
	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	CustomerID   *uuid.UUID `json:"customerId"`
	CustomerName string     `json:"customerName" binding:"required"`
	Rating       int        `json:"rating" binding:"required"`
	ServiceType  string     `json:"serviceType" binding:"required"`
	Comment      string     `json:"comment"`
	Technician   string     `json:"technician"`
	ReviewDate   *time.Time `json:"reviewDate"`
}

type UpdateReviewInput struct {
	Rating      *int    `json:"rating"`
	ServiceType *string `json:"serviceType"`
	Comment     *string `json:"comment"`
	Technician  *string `json:"technician"`
}

// CreateReview records a service review
func CreateReview(c *gin.Context) {
	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateRating(input.Rating) {
		utils.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	reviewDate := time.Now()
	if input.ReviewDate != nil {
		reviewDate = *input.ReviewDate
	}

	review := models.ServiceReview{
		ID:           uuid.New(),
		CustomerID:   input.CustomerID,
		CustomerName: input.CustomerName,
		Rating:       input.Rating,
		ServiceType:  input.ServiceType,
		Comment:      input.Comment,
		Technician:   input.Technician,
		ReviewDate:   reviewDate,
	}

	if err := config.DB.Create(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews lists reviews, newest first
func GetReviews(c *gin.Context) {
	var reviews []models.ServiceReview
	if err := config.DB.Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// UpdateReview updates an existing review
func UpdateReview(c *gin.Context) {
	reviewUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var review models.ServiceReview
	if err := config.DB.Where("id = ?", reviewUUID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Rating != nil {
		if !utils.ValidateRating(*input.Rating) {
			utils.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}
		review.Rating = *input.Rating
	}
	if input.ServiceType != nil {
		review.ServiceType = *input.ServiceType
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	if input.Technician != nil {
		review.Technician = *input.Technician
	}

	if err := config.DB.Save(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review
func DeleteReview(c *gin.Context) {
	reviewUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	result := config.DB.Where("id = ?", reviewUUID).Delete(&models.ServiceReview{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
