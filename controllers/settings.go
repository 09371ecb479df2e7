// controllers/settings.go
package controllers

import (
	"net/http"

	"aquacare-backend/config"
	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type UpsertSettingInput struct {
	SettingType   models.SettingType   `json:"settingType" binding:"required,oneof=birthday welcome guarantee filter promotional loan"`
	Enabled       *bool                `json:"enabled" binding:"required"`
	Configuration models.SettingConfig `json:"configuration"`
}

// GetSettings returns all notification settings keyed by setting type
func GetSettings(c *gin.Context) {
	var settings []models.NotificationSetting
	if err := config.DB.Find(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	byType := make(map[models.SettingType]models.NotificationSetting, len(settings))
	for _, s := range settings {
		byType[s.SettingType] = s
	}

	c.JSON(http.StatusOK, byType)
}

// UpsertSetting writes the single row for a setting type, replacing any
// existing one.
func UpsertSetting(c *gin.Context) {
	var input UpsertSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	setting := models.NotificationSetting{
		SettingType:   input.SettingType,
		Enabled:       *input.Enabled,
		Configuration: input.Configuration,
	}

	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "configuration", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	c.JSON(http.StatusOK, setting)
}
