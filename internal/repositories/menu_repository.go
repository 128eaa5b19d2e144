package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"resto_pos_backend/internal/models"
)

// MenuRepository defines the interface for menu category and item
// persistence.
type MenuRepository interface {
	// Category methods
	CreateCategory(executor SQLExecutor, category *models.MenuCategory) (int64, error)
	GetCategoryByID(id int64) (*models.MenuCategory, error)
	GetCategories() ([]models.MenuCategory, error)
	UpdateCategory(executor SQLExecutor, category *models.MenuCategory) error
	DeleteCategory(executor SQLExecutor, id int64) error
	CountItemsInCategory(categoryID int64) (int, error)

	// Item methods
	CreateItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	GetItemByID(id int64) (*models.MenuItem, error)
	GetItems(categoryID *int64, availableOnly bool, page, pageSize int) ([]models.MenuItem, int, error)
	UpdateItem(executor SQLExecutor, item *models.MenuItem) error
	SetItemAvailability(executor SQLExecutor, id int64, available bool) error
	DeleteItem(executor SQLExecutor, id int64) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

// --- Category Methods ---

func (r *menuRepository) CreateCategory(executor SQLExecutor, category *models.MenuCategory) (int64, error) {
	query := `INSERT INTO menu_categories (name, description, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	now := time.Now()
	err := executor.QueryRow(query, category.Name, category.Description, category.SortOrder, now, now).Scan(&category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: menu category name %q already exists", ErrDuplicateKey, category.Name)
		}
		return 0, fmt.Errorf("%w: creating menu category: %v", ErrDatabaseError, err)
	}
	return category.ID, nil
}

func (r *menuRepository) GetCategoryByID(id int64) (*models.MenuCategory, error) {
	category := &models.MenuCategory{}
	query := `SELECT id, name, description, sort_order, created_at, updated_at FROM menu_categories WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&category.ID, &category.Name, &category.Description, &category.SortOrder,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu category by ID %d: %v", ErrDatabaseError, id, err)
	}
	return category, nil
}

func (r *menuRepository) GetCategories() ([]models.MenuCategory, error) {
	categories := []models.MenuCategory{}
	query := `SELECT id, name, description, sort_order, created_at, updated_at
	          FROM menu_categories ORDER BY sort_order, name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting menu categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category models.MenuCategory
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Description, &category.SortOrder,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning menu category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *menuRepository) UpdateCategory(executor SQLExecutor, category *models.MenuCategory) error {
	query := `UPDATE menu_categories SET name = $1, description = $2, sort_order = $3, updated_at = $4 WHERE id = $5`
	result, err := executor.Exec(query, category.Name, category.Description, category.SortOrder, time.Now(), category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: menu category name %q already exists", ErrDuplicateKey, category.Name)
		}
		return fmt.Errorf("%w: updating menu category %d: %v", ErrDatabaseError, category.ID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM menu_categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: menu category %d still has items", ErrForeignKeyInUse, id)
		}
		return fmt.Errorf("%w: deleting menu category %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) CountItemsInCategory(categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM menu_items WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting items in category %d: %v", ErrDatabaseError, categoryID, err)
	}
	return count, nil
}

// --- Item Methods ---

func (r *menuRepository) CreateItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items (category_id, name, description, price, is_available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	now := time.Now()
	err := executor.QueryRow(query,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, now, now,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return 0, fmt.Errorf("%w: menu item name %q already exists", ErrDuplicateKey, item.Name)
			case "foreign_key_violation":
				return 0, fmt.Errorf("%w: category %d", ErrNotFound, item.CategoryID)
			}
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) GetItemByID(id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var categoryName string
	query := `SELECT mi.id, mi.category_id, mi.name, mi.description, mi.price, mi.is_available,
	                 mi.created_at, mi.updated_at, mc.name
	          FROM menu_items mi JOIN menu_categories mc ON mi.category_id = mc.id
	          WHERE mi.id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price, &item.IsAvailable,
		&item.CreatedAt, &item.UpdatedAt, &categoryName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, id, err)
	}
	item.CategoryName = &categoryName
	return item, nil
}

func (r *menuRepository) GetItems(categoryID *int64, availableOnly bool, page, pageSize int) ([]models.MenuItem, int, error) {
	items := []models.MenuItem{}
	totalCount := 0

	query := `SELECT mi.id, mi.category_id, mi.name, mi.description, mi.price, mi.is_available,
	                 mi.created_at, mi.updated_at, mc.name, COUNT(*) OVER() AS total_count
	          FROM menu_items mi JOIN menu_categories mc ON mi.category_id = mc.id
	          WHERE ($1::bigint IS NULL OR mi.category_id = $1)
	            AND ($2::boolean = false OR mi.is_available = true)
	          ORDER BY mc.sort_order, mi.name
	          LIMIT $3 OFFSET $4`
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(query, categoryID, availableOnly, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		var categoryName string
		if err := rows.Scan(
			&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price, &item.IsAvailable,
			&item.CreatedAt, &item.UpdatedAt, &categoryName, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		item.CategoryName = &categoryName
		items = append(items, item)
	}
	return items, totalCount, rows.Err()
}

func (r *menuRepository) UpdateItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items
	          SET category_id = $1, name = $2, description = $3, price = $4, is_available = $5, updated_at = $6
	          WHERE id = $7`
	result, err := executor.Exec(query,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, time.Now(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating menu item %d: %v", ErrDatabaseError, item.ID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) SetItemAvailability(executor SQLExecutor, id int64, available bool) error {
	result, err := executor.Exec(
		`UPDATE menu_items SET is_available = $1, updated_at = $2 WHERE id = $3`,
		available, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: setting availability for menu item %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) DeleteItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: menu item %d is referenced by order lines", ErrForeignKeyInUse, id)
		}
		return fmt.Errorf("%w: deleting menu item %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
