package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrOrderNotEditable    = errors.New("order can no longer be modified")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrBadStatusTransition = errors.New("status transition not allowed")
)

// Order statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// CreateOrderItemRequest is one requested order line.
type CreateOrderItemRequest struct {
	MenuItemID         int64  `json:"menu_item_id" binding:"required"`
	Quantity           int    `json:"quantity" binding:"required,gt=0"`
	SpecialInstruction string `json:"special_instruction"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	TableID    int64                    `json:"table_id" binding:"required"`
	StaffID    *int64                   `json:"staff_id"`
	Notes      *string                  `json:"notes"`
	OrderItems []CreateOrderItemRequest `json:"order_items" binding:"required,dive"`
}

// AddOrderItemsRequest appends lines to an existing open order.
type AddOrderItemsRequest struct {
	OrderItems []CreateOrderItemRequest `json:"order_items" binding:"required,dive"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderService manages order lifecycle: items can be appended only while
// the order is pending or processing, and unit prices are frozen from the
// menu at the moment each line is added.
type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	AddItems(orderID int64, req AddOrderItemsRequest) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(orderID int64) error
}

type orderService struct {
	orderRepo repositories.OrderRepository
	menuRepo  repositories.MenuRepository
	tableRepo repositories.TableRepository
	db        *sql.DB
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	mr repositories.MenuRepository,
	tr repositories.TableRepository,
	db *sql.DB,
) OrderService {
	return &orderService{orderRepo: or, menuRepo: mr, tableRepo: tr, db: db}
}

// ValidOrderStatus reports whether status is one of the known statuses.
func ValidOrderStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ValidStatusTransition reports whether an order may move from one status
// to another. Completed and cancelled are terminal.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusProcessing || to == StatusCompleted || to == StatusCancelled
	case StatusProcessing:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// OrderEditable reports whether items may still be appended.
func OrderEditable(status string) bool {
	return status == StatusPending || status == StatusProcessing
}

// buildOrderItems resolves each requested line against the menu, freezing
// the current menu price into the line's unit price.
func (s *orderService) buildOrderItems(reqs []CreateOrderItemRequest) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	for _, itemReq := range reqs {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for menu item %d must be positive", ErrValidation, itemReq.MenuItemID)
		}
		menuItem, err := s.menuRepo.GetItemByID(itemReq.MenuItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", ErrMenuItemNotFound, itemReq.MenuItemID)
			}
			return nil, fmt.Errorf("failed to fetch menu item %d: %w", itemReq.MenuItemID, err)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemUnavailable, menuItem.Name)
		}
		items = append(items, models.OrderItem{
			MenuItemID:         itemReq.MenuItemID,
			Quantity:           itemReq.Quantity,
			UnitPrice:          menuItem.Price,
			SpecialInstruction: models.NewNullString(itemReq.SpecialInstruction),
		})
	}
	return items, nil
}

func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: order must have at least one item", ErrValidation)
	}
	if _, err := s.tableRepo.GetTableByID(req.TableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table %d: %w", req.TableID, err)
	}

	itemsToCreate, err := s.buildOrderItems(req.OrderItems)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	order := models.Order{
		TableID:   req.TableID,
		StaffID:   req.StaffID,
		Status:    StatusPending,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	orderID, err := s.orderRepo.CreateOrder(tx, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	for _, item := range itemsToCreate {
		item.OrderID = orderID
		if _, err := s.orderRepo.CreateOrderItem(tx, &item); err != nil {
			return nil, fmt.Errorf("failed to create order item (menu_item_id: %d): %w", item.MenuItemID, err)
		}
	}

	if err := s.tableRepo.UpdateTableStatus(tx, req.TableID, models.TableStatusOccupied); err != nil {
		return nil, fmt.Errorf("failed to mark table occupied: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return s.GetOrderByID(orderID)
}

// AddItems appends lines to an open order. The frozen unit prices of
// already-placed lines are never touched.
func (s *orderService) AddItems(orderID int64, req AddOrderItemsRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: no items to add", ErrValidation)
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if !OrderEditable(order.Status) {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotEditable, order.Status)
	}

	itemsToCreate, err := s.buildOrderItems(req.OrderItems)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range itemsToCreate {
		item.OrderID = orderID
		if _, err := s.orderRepo.CreateOrderItem(tx, &item); err != nil {
			return nil, fmt.Errorf("failed to append order item (menu_item_id: %d): %w", item.MenuItemID, err)
		}
	}
	if err := s.orderRepo.UpdateOrderStatus(tx, orderID, order.Status, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to touch order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item append: %w", err)
	}
	return s.GetOrderByID(orderID)
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.OrderItems = items
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !ValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}
	if !ValidStatusTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadStatusTransition, order.Status, req.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateOrderStatus(tx, orderID, req.Status, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// Settling or cancelling the last open order frees the table.
	if req.Status == StatusCompleted || req.Status == StatusCancelled {
		if err := s.tableRepo.UpdateTableStatus(tx, order.TableID, models.TableStatusAvailable); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to release table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return s.GetOrderByID(orderID)
}

func (s *orderService) DeleteOrder(orderID int64) error {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for deletion: %w", err)
	}
	if order.Status == StatusCompleted {
		return fmt.Errorf("%w: completed orders are kept for reporting", ErrOrderNotEditable)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if _, err := s.orderRepo.DeleteOrder(tx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return tx.Commit()
}
