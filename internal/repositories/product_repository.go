package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"retail_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for product and category database operations.
type ProductRepository interface {
	// Product methods
	Create(executor SQLExecutor, product *models.Product) (int64, error)
	GetByID(id int64) (*models.Product, error)
	List() ([]models.Product, error)
	Update(executor SQLExecutor, product *models.Product) error
	SoftDelete(executor SQLExecutor, id int64) error
	// GetPriceAndCost resolves the current retail price and purchase cost of a
	// product. Used by the sale service when pricing operation lines.
	GetPriceAndCost(productID int64) (price float64, cost float64, err error)

	// Category methods
	CreateCategory(executor SQLExecutor, category *models.Category) (int64, error)
	ListCategories() ([]models.Category, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (article, name, category_id, unit, purchase_price, retail_price, min_stock_level, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	          RETURNING id_product`
	err := executor.QueryRow(query,
		product.Article, product.Name, product.CategoryID, product.Unit,
		product.PurchasePrice, product.RetailPrice, product.MinStockLevel,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: product article '%s' already exists", ErrDuplicateKey, product.Article)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT id_product, article, name, category_id, unit, purchase_price, retail_price, min_stock_level, is_active
	          FROM products
	          WHERE id_product = $1 AND is_active = TRUE`
	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Article, &product.Name, &product.CategoryID, &product.Unit,
		&product.PurchasePrice, &product.RetailPrice, &product.MinStockLevel, &product.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) List() ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT p.id_product, p.article, p.name, p.category_id, c.name AS category_name, p.unit,
	                 p.purchase_price, p.retail_price, p.min_stock_level, p.is_active
	          FROM products p
	          LEFT JOIN categories c ON c.id = p.category_id
	          WHERE p.is_active = TRUE
	          ORDER BY p.name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		var categoryName sql.NullString
		if err := rows.Scan(&p.ID, &p.Article, &p.Name, &p.CategoryID, &categoryName, &p.Unit,
			&p.PurchasePrice, &p.RetailPrice, &p.MinStockLevel, &p.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		if categoryName.Valid {
			name := categoryName.String
			p.CategoryName = &name
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) Update(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products
	          SET name = $1, category_id = $2, unit = $3, purchase_price = $4, retail_price = $5, min_stock_level = $6
	          WHERE id_product = $7`
	result, err := executor.Exec(query,
		product.Name, product.CategoryID, product.Unit,
		product.PurchasePrice, product.RetailPrice, product.MinStockLevel, product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) SoftDelete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`UPDATE products SET is_active = FALSE WHERE id_product = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deactivating product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) GetPriceAndCost(productID int64) (float64, float64, error) {
	var price, cost float64
	query := `SELECT retail_price, purchase_price FROM products WHERE id_product = $1`
	err := r.db.QueryRow(query, productID).Scan(&price, &cost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, fmt.Errorf("%w: getting price for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return price, cost, nil
}

// --- Category Methods ---

func (r *productRepository) CreateCategory(executor SQLExecutor, category *models.Category) (int64, error) {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	err := executor.QueryRow(query, category.Name).Scan(&category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: category name '%s' already exists", ErrDuplicateKey, category.Name)
		}
		return 0, fmt.Errorf("%w: creating category: %v", ErrDatabaseError, err)
	}
	return category.ID, nil
}

func (r *productRepository) ListCategories() ([]models.Category, error) {
	categories := []models.Category{}
	rows, err := r.db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}
