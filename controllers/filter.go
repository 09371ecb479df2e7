// controllers/filter.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"aquacare-backend/config"
	"aquacare-backend/models"
	"aquacare-backend/services"
	"aquacare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateFilterChangeInput struct {
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	FilterType string    `json:"filterType" binding:"required"`
	ChangeDate time.Time `json:"changeDate" binding:"required"`
	NextDue    time.Time `json:"nextDue" binding:"required"`
	Technician string    `json:"technician"`
	Notes      string    `json:"notes"`
}

type FilterHistoryEntry struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customerName"`
	FilterType   string    `json:"filterType"`
	ChangeDate   time.Time `json:"changeDate"`
	NextDue      time.Time `json:"nextDue"`
	Technician   string    `json:"technician"`
	Status       string    `json:"status"`
}

type PendingFilter struct {
	CustomerID   uuid.UUID         `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Phone        string            `json:"phone"`
	FilterType   string            `json:"filterType"`
	DueDate      time.Time         `json:"dueDate"`
	DaysOverdue  int               `json:"daysOverdue"`
	Priority     services.Priority `json:"priority"`
}

// CreateFilterChange finalizes a completed filter replacement. The history
// row is immutable; the customer's service dates roll forward with it.
func CreateFilterChange(c *gin.Context) {
	var input CreateFilterChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", input.CustomerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	change := models.FilterChange{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		FilterType: input.FilterType,
		ChangeDate: input.ChangeDate,
		NextDue:    input.NextDue,
		Technician: input.Technician,
		Status:     "Completed",
		Notes:      input.Notes,
	}

	if err := config.DB.Create(&change).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record filter change")
		return
	}

	// Roll the customer's service dates forward
	customer.LastService = &change.ChangeDate
	customer.NextService = &change.NextDue
	customer.FilterType = change.FilterType
	if err := config.DB.Save(&customer).Error; err != nil {
		config.Logger.Error().Err(err).Str("customer", customer.Name).
			Msg("failed to roll customer service dates")
	}

	c.JSON(http.StatusCreated, change)
}

// GetFilterChanges lists the filter change history, newest first
func GetFilterChanges(c *gin.Context) {
	var history []FilterHistoryEntry
	err := config.DB.Raw(`
        SELECT fc.id, c.name AS customer_name, fc.filter_type, fc.change_date,
               fc.next_due, fc.technician, fc.status
        FROM filter_changes fc
        JOIN customers c ON c.id = fc.customer_id
        WHERE fc.deleted_at IS NULL
        ORDER BY fc.change_date DESC
    `).Scan(&history).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve filter history")
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetPendingFilters lists customers whose filter is due, with overdue days
// and a priority bucket, plus summary stats.
func GetPendingFilters(c *gin.Context) {
	today := utils.BeginningOfDay(time.Now())

	var customers []models.Customer
	if err := config.DB.
		Where("next_service IS NOT NULL AND next_service <= ?", today).
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pending filters")
		return
	}

	matches := services.EvaluateFilterDue(today, customers)

	pending := make([]PendingFilter, 0, len(matches))
	dueToday := 0
	overdue := 0
	for _, m := range matches {
		filterType := m.Customer.FilterType
		if filterType == "" {
			filterType = "N/A"
		}
		pending = append(pending, PendingFilter{
			CustomerID:   m.Customer.ID,
			CustomerName: m.Customer.Name,
			Phone:        m.Customer.Phone,
			FilterType:   filterType,
			DueDate:      *m.Customer.NextService,
			DaysOverdue:  m.DaysOverdue,
			Priority:     m.Priority,
		})
		if m.DaysOverdue == 0 {
			dueToday++
		} else {
			overdue++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"pending": pending,
		"stats": gin.H{
			"dueToday": dueToday,
			"overdue":  overdue,
			"total":    len(pending),
		},
	})
}

// DeleteFilterChange removes a history row
func DeleteFilterChange(c *gin.Context) {
	changeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid filter change ID format")
		return
	}

	result := config.DB.Where("id = ?", changeUUID).Delete(&models.FilterChange{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete filter change")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Filter change not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Filter change deleted successfully"})
}
