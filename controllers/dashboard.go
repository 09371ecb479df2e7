package controllers

import (
	"fmt"
	"net/http"
	"time"

	"aquacare-backend/config"
	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/gin-gonic/gin"
)

type RecentActivity struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"` // e.g. "Today", "Yesterday", "3 days ago"
}

// GetDashboardOverview aggregates the headline stats for the admin dashboard
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	today := utils.BeginningOfDay(now)

	// Total customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("deleted_at IS NULL").Count(&totalCustomers)

	// Birthdays today (month+day match, year ignored)
	var birthdaysToday int64
	config.DB.Raw(`
        SELECT COUNT(*) FROM customers
        WHERE deleted_at IS NULL
        AND birth_date IS NOT NULL
        AND EXTRACT(MONTH FROM birth_date) = ?
        AND EXTRACT(DAY FROM birth_date) = ?
    `, int(now.Month()), now.Day()).Scan(&birthdaysToday)

	// Filter changes due (next service today or past)
	var filterChangesDue int64
	config.DB.Model(&models.Customer{}).
		Where("deleted_at IS NULL AND next_service IS NOT NULL AND next_service <= ?", today).
		Count(&filterChangesDue)

	// Messages sent this month
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var messagesSent int64
	config.DB.Model(&models.ScheduledMessage{}).
		Where("deleted_at IS NULL AND status = ? AND sent_at >= ?", models.MessageSent, firstOfMonth).
		Count(&messagesSent)

	// Pending reviews (rating below 4 needs a follow up)
	var pendingReviews int64
	config.DB.Model(&models.ServiceReview{}).
		Where("deleted_at IS NULL AND rating < ?", 4).
		Count(&pendingReviews)

	// Active guarantees
	var guaranteesActive int64
	config.DB.Model(&models.Customer{}).
		Where("deleted_at IS NULL AND guarantee_expiry IS NOT NULL AND guarantee_expiry >= ?", today).
		Count(&guaranteesActive)

	// Recent activity from the message log
	var recentMessages []models.ScheduledMessage
	config.DB.Order("created_at DESC").Limit(5).Find(&recentMessages)

	recentActivities := make([]RecentActivity, 0, len(recentMessages))
	for _, msg := range recentMessages {
		recentActivities = append(recentActivities, RecentActivity{
			Type:    string(msg.MessageType),
			Message: fmt.Sprintf("%s message sent to %s", msg.MessageType, msg.RecipientName),
			Time:    utils.RelativeTime(msg.CreatedAt, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":   totalCustomers,
		"birthdaysToday":   birthdaysToday,
		"filterChangesDue": filterChangesDue,
		"messagesSent":     messagesSent,
		"pendingReviews":   pendingReviews,
		"guaranteesActive": guaranteesActive,
		"recentActivities": recentActivities,
	})
}
