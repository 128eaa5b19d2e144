package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// TableHandler holds the table service.
type TableHandler struct {
	tableService services.TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ts services.TableService) *TableHandler {
	return &TableHandler{tableService: ts}
}

// CreateTable registers a new dining table.
func (h *TableHandler) CreateTable(c *gin.Context) {
	var table models.DiningTable
	if err := c.ShouldBindJSON(&table); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	created, err := h.tableService.CreateTable(&table)
	if err != nil {
		if errors.Is(err, services.ErrTableNumberTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table number is already in use.", err.Error()))
		} else {
			utils.LogError(err, "CreateTable: error from tableService.CreateTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create table.", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTables lists all dining tables with their statuses.
func (h *TableHandler) GetTables(c *gin.Context) {
	tables, err := h.tableService.GetTables()
	if err != nil {
		utils.LogError(err, "GetTables: error from tableService.GetTables")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tables.", ""))
		return
	}
	c.JSON(http.StatusOK, tables)
}

// GetTable fetches one table by id.
func (h *TableHandler) GetTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	table, err := h.tableService.GetTableByID(id)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else {
			utils.LogError(err, "GetTable: error from tableService.GetTableByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch table.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTable updates a table's number, capacity and location.
func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var table models.DiningTable
	if err := c.ShouldBindJSON(&table); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	table.ID = id

	updated, err := h.tableService.UpdateTable(&table)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		case errors.Is(err, services.ErrTableNumberTaken):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table number is already in use.", err.Error()))
		default:
			utils.LogError(err, "UpdateTable: error from tableService.UpdateTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

type tableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTableStatus sets a table's occupancy status.
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req tableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	table, err := h.tableService.UpdateTableStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		case errors.Is(err, services.ErrInvalidTableStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table status.", err.Error()))
		default:
			utils.LogError(err, "UpdateTableStatus: error from tableService.UpdateTableStatus")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table status.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// DeleteTable removes a table with no order history.
func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tableService.DeleteTable(id); err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		case errors.Is(err, services.ErrTableHasOrders):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table has orders and cannot be deleted.", err.Error()))
		default:
			utils.LogError(err, "DeleteTable: error from tableService.DeleteTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete table.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}

type generateQRRequest struct {
	TTLHours int `json:"ttl_hours"`
}

// GenerateQRCode issues a fresh ordering QR token for a table, revoking
// any previously active one.
func (h *TableHandler) GenerateQRCode(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Body is optional; the default TTL applies when absent.
	var req generateQRRequest
	_ = c.ShouldBindJSON(&req)

	qr, err := h.tableService.GenerateQRCode(id, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else {
			utils.LogError(err, "GenerateQRCode: error from tableService.GenerateQRCode")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate QR code.", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, qr)
}

// ExpireQRCode revokes the table's active QR token.
func (h *TableHandler) ExpireQRCode(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tableService.ExpireQRCode(id); err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		case errors.Is(err, services.ErrQRCodeNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table has no active QR code.", ""))
		default:
			utils.LogError(err, "ExpireQRCode: error from tableService.ExpireQRCode")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to expire QR code.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "QR code expired successfully"})
}

// ResolveQRToken resolves a scanned QR token to its table. Used by the
// customer-facing ordering page, so it is not permission-gated.
func (h *TableHandler) ResolveQRToken(c *gin.Context) {
	token := c.Param("token")
	if utils.IsEmpty(token) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "QR token is required.", ""))
		return
	}

	table, err := h.tableService.ResolveQRToken(token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQRCodeNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "QR code not found.", ""))
		case errors.Is(err, services.ErrQRCodeExpired):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusGone, utils.ErrCodeQRCodeExpired, "QR code has expired.", ""))
		default:
			utils.LogError(err, "ResolveQRToken: error from tableService.ResolveQRToken")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to resolve QR code.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}
