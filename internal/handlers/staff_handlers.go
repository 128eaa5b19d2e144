package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaffMember creates a user account and its staff profile together.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	staff, err := h.staffService.CreateStaffMember(req)
	if err != nil {
		utils.LogError(err, "CreateStaffMember: error from staffService.CreateStaffMember")
		switch {
		case errors.Is(err, services.ErrUsernameExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username is already taken.", err.Error()))
		case errors.Is(err, services.ErrUnknownPermission):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unknown permission string.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaffMembers lists staff with pagination.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	page, pageSize := pagination(c)
	staff, total, err := h.staffService.GetStaffMembers(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetStaffMembers: error from staffService.GetStaffMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff members.", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      staff,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetStaffMember fetches one staff member by id.
func (h *StaffHandler) GetStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaffMemberByID(id)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", ""))
		} else {
			utils.LogError(err, "GetStaffMember: error from staffService.GetStaffMemberByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaffMember updates position, phone and active flag.
func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	staff, err := h.staffService.UpdateStaffMember(id, req)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", ""))
		} else {
			utils.LogError(err, "UpdateStaffMember: error from staffService.UpdateStaffMember")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaffMember deactivates and removes a staff profile.
func (h *StaffHandler) DeleteStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeleteStaffMember(id); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", ""))
		} else {
			utils.LogError(err, "DeleteStaffMember: error from staffService.DeleteStaffMember")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete staff member.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}

type setPermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// SetPermissions replaces a staff member's permission set.
func (h *StaffHandler) SetPermissions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req setPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	staff, err := h.staffService.SetPermissions(id, req.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", ""))
		case errors.Is(err, services.ErrUnknownPermission):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unknown permission string.", err.Error()))
		default:
			utils.LogError(err, "SetPermissions: error from staffService.SetPermissions")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update permissions.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}
