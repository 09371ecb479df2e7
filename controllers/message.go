// controllers/message.go
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

// MessageController handles the message center: the scheduled message log
// and operator-initiated sends through the dispatch client.
type MessageController struct {
	Messenger services.Messenger
}

type CreateScheduledMessageInput struct {
	CustomerID     *uuid.UUID           `json:"customerId"`
	TemplateID     *uuid.UUID           `json:"templateId"`
	RecipientName  string               `json:"recipientName" binding:"required"`
	RecipientPhone string               `json:"recipientPhone" binding:"required"`
	MessageType    models.MessageType   `json:"messageType" binding:"required,oneof=birthday welcome filter_reminder guarantee promotional loan"`
	Content        string               `json:"content" binding:"required"`
	Method         models.MessageMethod `json:"method" binding:"required,oneof=whatsapp sms"`
	ScheduledFor   time.Time            `json:"scheduledFor" binding:"required"`
}

type UpdateScheduledMessageInput struct {
	RecipientName  *string               `json:"recipientName"`
	RecipientPhone *string               `json:"recipientPhone"`
	Content        *string               `json:"content"`
	Method         *models.MessageMethod `json:"method" binding:"omitempty,oneof=whatsapp sms"`
	ScheduledFor   *time.Time            `json:"scheduledFor"`
}

type SendMessageInput struct {
	To           string               `json:"to" binding:"required"`
	Message      string               `json:"message" binding:"required"`
	Method       models.MessageMethod `json:"method" binding:"required,oneof=whatsapp sms"`
	CustomerName string               `json:"customerName"`
	CustomerID   *uuid.UUID           `json:"customerId"`
	MessageType  models.MessageType   `json:"messageType" binding:"omitempty,oneof=birthday welcome filter_reminder guarantee promotional loan"`
}

type ComposeInput struct {
	CustomerIDs []uuid.UUID          `json:"customerIds" binding:"required,min=1"`
	TemplateID  uuid.UUID            `json:"templateId" binding:"required"`
	Method      models.MessageMethod `json:"method" binding:"required,oneof=whatsapp sms"`
	ScheduleFor *time.Time           `json:"scheduleFor"`
}

// GetScheduledMessages lists the message log, soonest first
func (mc *MessageController) GetScheduledMessages(c *gin.Context) {
	var messages []models.ScheduledMessage
	query := config.DB.Order("scheduled_for")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&messages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateScheduledMessage persists a future send with no dispatch call
func (mc *MessageController) CreateScheduledMessage(c *gin.Context) {
	var input CreateScheduledMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	message := models.ScheduledMessage{
		ID:             uuid.New(),
		CustomerID:     input.CustomerID,
		TemplateID:     input.TemplateID,
		RecipientName:  input.RecipientName,
		RecipientPhone: input.RecipientPhone,
		MessageType:    input.MessageType,
		Content:        input.Content,
		Method:         input.Method,
		ScheduledFor:   input.ScheduledFor,
		Status:         models.MessageScheduled,
	}

	if err := config.DB.Create(&message).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to schedule message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// UpdateScheduledMessage edits a not-yet-sent entry. Sent and Failed rows are
// an immutable log and reject edits.
func (mc *MessageController) UpdateScheduledMessage(c *gin.Context) {
	messageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	var input UpdateScheduledMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var message models.ScheduledMessage
	if err := config.DB.Where("id = ?", messageUUID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Message not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if message.Status != models.MessageScheduled {
		utils.RespondWithError(c, http.StatusConflict, "Only scheduled messages can be edited")
		return
	}

	if input.RecipientName != nil {
		message.RecipientName = *input.RecipientName
	}
	if input.RecipientPhone != nil {
		message.RecipientPhone = *input.RecipientPhone
	}
	if input.Content != nil {
		message.Content = *input.Content
	}
	if input.Method != nil {
		message.Method = *input.Method
	}
	if input.ScheduledFor != nil {
		message.ScheduledFor = *input.ScheduledFor
	}

	if err := config.DB.Save(&message).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update message")
		return
	}

	c.JSON(http.StatusOK, message)
}

// DeleteScheduledMessage removes an entry from the log
func (mc *MessageController) DeleteScheduledMessage(c *gin.Context) {
	messageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	result := config.DB.Where("id = ?", messageUUID).Delete(&models.ScheduledMessage{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete message")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Message not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

// SendMessage sends one ad-hoc message immediately and records the terminal
// outcome. Immediate sends never persist a Scheduled state.
func (mc *MessageController) SendMessage(c *gin.Context) {
	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	msgType := input.MessageType
	if msgType == "" {
		msgType = models.MessagePromotional
	}
	name := input.CustomerName
	if name == "" {
		name = input.To
	}

	result := mc.Messenger.SendOne(c.Request.Context(), services.OutboundMessage{
		To:           input.To,
		Body:         input.Message,
		Method:       input.Method,
		CustomerName: name,
		CustomerID:   input.CustomerID,
	})

	now := time.Now()
	row := models.ScheduledMessage{
		CustomerID:     input.CustomerID,
		RecipientName:  name,
		RecipientPhone: input.To,
		MessageType:    msgType,
		Content:        input.Message,
		Method:         input.Method,
		ScheduledFor:   now,
		Status:         models.MessageScheduled,
	}
	if result.Success {
		_ = row.Transition(models.MessageSent, now)
	} else {
		_ = row.Transition(models.MessageFailed, now)
		row.ErrorMessage = result.Error
	}
	if err := config.DB.Create(&row).Error; err != nil {
		config.Logger.Error().Err(err).Msg("failed to persist message record")
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"success":   result.Success,
		"messageId": result.MessageID,
		"to":        result.To,
		"method":    result.Method,
		"error":     result.Error,
	})
}

// Compose sends a template to many customers at once, or schedules the rows
// for later when scheduleFor is set (no dispatch happens in that mode).
func (mc *MessageController) Compose(c *gin.Context) {
	var input ComposeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.MessageTemplate
	if err := config.DB.Where("id = ?", input.TemplateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("id IN ?", input.CustomerIDs).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	if len(customers) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No matching customers found")
		return
	}

	// Schedule-for-later mode: persist Scheduled rows, defer dispatch
	if input.ScheduleFor != nil {
		scheduled := 0
		for _, customer := range customers {
			customer := customer
			row := models.ScheduledMessage{
				CustomerID:     &customer.ID,
				TemplateID:     &template.ID,
				RecipientName:  customer.Name,
				RecipientPhone: customer.Phone,
				MessageType:    template.Type,
				Content:        services.Personalize(template.Content, customer),
				Method:         input.Method,
				ScheduledFor:   *input.ScheduleFor,
				Status:         models.MessageScheduled,
			}
			if err := config.DB.Create(&row).Error; err != nil {
				config.Logger.Error().Err(err).Str("customer", customer.Name).
					Msg("failed to schedule message")
				continue
			}
			scheduled++
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":   true,
			"scheduled": scheduled,
		})
		return
	}

	// Immediate mode: bulk dispatch, then one terminal row per recipient
	messages := make([]services.OutboundMessage, 0, len(customers))
	contentByID := make(map[uuid.UUID]string, len(customers))
	for _, customer := range customers {
		customer := customer
		body := services.Personalize(template.Content, customer)
		contentByID[customer.ID] = body
		messages = append(messages, services.OutboundMessage{
			To:           customer.Phone,
			Body:         body,
			Method:       input.Method,
			CustomerName: customer.Name,
			CustomerID:   &customer.ID,
		})
	}

	bulk := mc.Messenger.SendBulk(c.Request.Context(), messages)

	now := time.Now()
	persist := func(entry services.RecipientResult, status models.MessageStatus) {
		row := models.ScheduledMessage{
			CustomerID:     entry.CustomerID,
			TemplateID:     &template.ID,
			RecipientName:  entry.CustomerName,
			RecipientPhone: entry.To,
			MessageType:    template.Type,
			Method:         input.Method,
			ScheduledFor:   now,
			Status:         models.MessageScheduled,
		}
		if entry.CustomerID != nil {
			row.Content = contentByID[*entry.CustomerID]
		}
		_ = row.Transition(status, now)
		if status == models.MessageFailed {
			row.ErrorMessage = entry.Error
		}
		if err := config.DB.Create(&row).Error; err != nil {
			config.Logger.Error().Err(err).Str("recipient", entry.CustomerName).
				Msg("failed to persist message record")
		}
	}
	for _, entry := range bulk.Results {
		persist(entry, models.MessageSent)
	}
	for _, entry := range bulk.Errors {
		persist(entry, models.MessageFailed)
	}

	c.JSON(http.StatusOK, bulk)
}
