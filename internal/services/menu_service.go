package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrCategoryNotFound = errors.New("menu category not found")
	ErrCategoryInUse    = errors.New("menu category still has items")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMenuItemInUse    = errors.New("menu item is referenced by existing orders")
	ErrDuplicateName    = errors.New("name already in use")
)

// CreateMenuItemRequest DTO
type CreateMenuItemRequest struct {
	CategoryID  int64           `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	IsAvailable *bool           `json:"is_available"`
}

// MenuService manages menu categories and items.
type MenuService interface {
	CreateCategory(category *models.MenuCategory) (*models.MenuCategory, error)
	GetCategories() ([]models.MenuCategory, error)
	GetCategoryByID(id int64) (*models.MenuCategory, error)
	UpdateCategory(category *models.MenuCategory) (*models.MenuCategory, error)
	DeleteCategory(id int64) error

	CreateItem(req CreateMenuItemRequest) (*models.MenuItem, error)
	GetItems(categoryID *int64, availableOnly bool, page, pageSize int) ([]models.MenuItem, int, error)
	GetItemByID(id int64) (*models.MenuItem, error)
	UpdateItem(item *models.MenuItem) (*models.MenuItem, error)
	SetItemAvailability(id int64, available bool) (*models.MenuItem, error)
	DeleteItem(id int64) error
}

type menuService struct {
	menuRepo repositories.MenuRepository
	db       *sql.DB
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository, db *sql.DB) MenuService {
	return &menuService{menuRepo: mr, db: db}
}

func (s *menuService) CreateCategory(category *models.MenuCategory) (*models.MenuCategory, error) {
	if _, err := s.menuRepo.CreateCategory(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: category %q", ErrDuplicateName, category.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return s.GetCategoryByID(category.ID)
}

func (s *menuService) GetCategories() ([]models.MenuCategory, error) {
	categories, err := s.menuRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *menuService) GetCategoryByID(id int64) (*models.MenuCategory, error) {
	category, err := s.menuRepo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *menuService) UpdateCategory(category *models.MenuCategory) (*models.MenuCategory, error) {
	if err := s.menuRepo.UpdateCategory(s.db, category); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: category %q", ErrDuplicateName, category.Name)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return s.GetCategoryByID(category.ID)
}

// DeleteCategory refuses to delete a category that still has items. The
// count check gives a clear error before the FK constraint would fire.
func (s *menuService) DeleteCategory(id int64) error {
	count, err := s.menuRepo.CountItemsInCategory(id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d item(s)", ErrCategoryInUse, count)
	}

	if err := s.menuRepo.DeleteCategory(s.db, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repositories.ErrForeignKeyInUse):
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *menuService) CreateItem(req CreateMenuItemRequest) (*models.MenuItem, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if _, err := s.menuRepo.GetCategoryByID(req.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	item := &models.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: models.NewNullString(req.Description),
		Price:       req.Price.Round(2),
		IsAvailable: available,
	}

	if _, err := s.menuRepo.CreateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: item %q", ErrDuplicateName, item.Name)
		}
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return s.GetItemByID(item.ID)
}

func (s *menuService) GetItems(categoryID *int64, availableOnly bool, page, pageSize int) ([]models.MenuItem, int, error) {
	items, total, err := s.menuRepo.GetItems(categoryID, availableOnly, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, total, nil
}

func (s *menuService) GetItemByID(id int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetItemByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) UpdateItem(item *models.MenuItem) (*models.MenuItem, error) {
	if item.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	item.Price = item.Price.Round(2)
	if err := s.menuRepo.UpdateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return s.GetItemByID(item.ID)
}

func (s *menuService) SetItemAvailability(id int64, available bool) (*models.MenuItem, error) {
	if err := s.menuRepo.SetItemAvailability(s.db, id, available); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to set item availability: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *menuService) DeleteItem(id int64) error {
	if err := s.menuRepo.DeleteItem(s.db, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrMenuItemNotFound
		case errors.Is(err, repositories.ErrForeignKeyInUse):
			return ErrMenuItemInUse
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}
