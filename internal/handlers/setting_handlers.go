package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// SettingHandler holds the settings service.
type SettingHandler struct {
	settingsService services.SettingsService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingsService) *SettingHandler {
	return &SettingHandler{settingsService: ss}
}

// GetSettings lists all application settings.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetAll()
	if err != nil {
		utils.LogError(err, "GetSettings: error from settingsService.GetAll")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", ""))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetSetting fetches one setting by key.
func (h *SettingHandler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if utils.IsEmpty(key) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Setting key is required.", ""))
		return
	}

	setting, err := h.settingsService.GetByKey(key)
	if err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found.", ""))
		} else {
			utils.LogError(err, "GetSetting: error from settingsService.GetByKey")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch setting.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UpsertSetting creates or replaces a setting value.
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var setting models.ApplicationSetting
	if err := c.ShouldBindJSON(&setting); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.settingsService.Upsert(&setting); err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid setting.", err.Error()))
		} else {
			utils.LogError(err, "UpsertSetting: error from settingsService.Upsert")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save setting.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSetting removes a setting, reverting it to its default.
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	key := c.Param("key")
	if utils.IsEmpty(key) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Setting key is required.", ""))
		return
	}

	if err := h.settingsService.DeleteByKey(key); err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found.", ""))
		} else {
			utils.LogError(err, "DeleteSetting: error from settingsService.DeleteByKey")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete setting.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted successfully"})
}

// GetTaxSettings returns the typed billing configuration view.
func (h *SettingHandler) GetTaxSettings(c *gin.Context) {
	ts, err := h.settingsService.GetTaxSettings()
	if err != nil {
		utils.LogError(err, "GetTaxSettings: error from settingsService.GetTaxSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tax settings.", ""))
		return
	}
	c.JSON(http.StatusOK, ts)
}
