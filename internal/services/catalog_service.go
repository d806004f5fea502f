package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
)

const (
	defaultUnit     = "pcs"
	defaultMinStock = 5
)

var ErrArticleTaken = errors.New("product article already taken")

// --- DTOs ---

// StoreRequest DTO for create/update.
type StoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// WarehouseRequest DTO for create/update.
type WarehouseRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Area    float64 `json:"area"`
}

// ProductRequest DTO for create/update.
type ProductRequest struct {
	Article       string  `json:"article"`
	Name          string  `json:"name" binding:"required"`
	CategoryID    *int64  `json:"category_id"`
	Unit          string  `json:"unit"`
	PurchasePrice float64 `json:"purchase_price"`
	RetailPrice   float64 `json:"retail_price"`
	MinStock      *int    `json:"min_stock"`
}

// --- CatalogService Interface ---

// CatalogService is the admin CRUD surface for stores, warehouses, products
// and categories. All deletes are soft.
type CatalogService interface {
	CreateStore(req StoreRequest) (*models.Store, error)
	GetStore(id int64) (*models.Store, error)
	ListStores() ([]models.Store, error)
	UpdateStore(id int64, req StoreRequest) error
	DeleteStore(id int64) error

	CreateWarehouse(req WarehouseRequest) (*models.Warehouse, error)
	GetWarehouse(id int64) (*models.Warehouse, error)
	ListWarehouses() ([]models.Warehouse, error)
	UpdateWarehouse(id int64, req WarehouseRequest) error
	DeleteWarehouse(id int64) error

	CreateProduct(req ProductRequest) (*models.Product, error)
	GetProduct(id int64) (*models.Product, error)
	ListProducts() ([]models.Product, error)
	UpdateProduct(id int64, req ProductRequest) error
	DeleteProduct(id int64) error

	CreateCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
}

type catalogService struct {
	locationRepo repositories.LocationRepository
	productRepo  repositories.ProductRepository
	db           repositories.SQLExecutor
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(lr repositories.LocationRepository, pr repositories.ProductRepository, db repositories.SQLExecutor) CatalogService {
	return &catalogService{locationRepo: lr, productRepo: pr, db: db}
}

// validatePhone accepts empty values; otherwise the number must contain at
// least 10 digits after stripping a leading country prefix.
func validatePhone(phone string) error {
	s := strings.TrimSpace(phone)
	if s == "" {
		return nil
	}
	var digits []rune
	for _, c := range s {
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) > 0 && (digits[0] == '8' || digits[0] == '7') {
		digits = digits[1:]
	}
	if len(digits) < 10 {
		return fmt.Errorf("%w: phone number must contain at least 10 digits", ErrValidation)
	}
	return nil
}

// --- Stores ---

func (s *catalogService) CreateStore(req StoreRequest) (*models.Store, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}
	store := models.Store{
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		Phone:    strings.TrimSpace(req.Phone),
		IsActive: true,
	}
	if _, err := s.locationRepo.CreateStore(s.db, &store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &store, nil
}

func (s *catalogService) GetStore(id int64) (*models.Store, error) {
	store, err := s.locationRepo.GetStoreByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch store: %w", err)
	}
	return store, nil
}

func (s *catalogService) ListStores() ([]models.Store, error) {
	return s.locationRepo.ListStores()
}

func (s *catalogService) UpdateStore(id int64, req StoreRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	store := models.Store{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
	}
	if err := s.locationRepo.UpdateStore(s.db, &store); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update store: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteStore(id int64) error {
	if err := s.locationRepo.SoftDeleteStore(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to deactivate store: %w", err)
	}
	return nil
}

// --- Warehouses ---

func (s *catalogService) CreateWarehouse(req WarehouseRequest) (*models.Warehouse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}
	warehouse := models.Warehouse{
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		Phone:    strings.TrimSpace(req.Phone),
		Area:     req.Area,
		IsActive: true,
	}
	if _, err := s.locationRepo.CreateWarehouse(s.db, &warehouse); err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	return &warehouse, nil
}

func (s *catalogService) GetWarehouse(id int64) (*models.Warehouse, error) {
	warehouse, err := s.locationRepo.GetWarehouseByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *catalogService) ListWarehouses() ([]models.Warehouse, error) {
	return s.locationRepo.ListWarehouses()
}

func (s *catalogService) UpdateWarehouse(id int64, req WarehouseRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	warehouse := models.Warehouse{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Area:    req.Area,
	}
	if err := s.locationRepo.UpdateWarehouse(s.db, &warehouse); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update warehouse: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteWarehouse(id int64) error {
	if err := s.locationRepo.SoftDeleteWarehouse(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to deactivate warehouse: %w", err)
	}
	return nil
}

// --- Products ---

func (s *catalogService) CreateProduct(req ProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	article := strings.TrimSpace(req.Article)
	if article == "" {
		article = "ART-" + time.Now().Format("20060102150405")
	}
	product := models.Product{
		Article:       article,
		Name:          strings.TrimSpace(req.Name),
		CategoryID:    req.CategoryID,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		RetailPrice:   req.RetailPrice,
		MinStockLevel: defaultMinStock,
		IsActive:      true,
	}
	if product.Unit == "" {
		product.Unit = defaultUnit
	}
	if req.MinStock != nil {
		product.MinStockLevel = *req.MinStock
	}
	if _, err := s.productRepo.Create(s.db, &product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrArticleTaken
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *catalogService) GetProduct(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *catalogService) ListProducts() ([]models.Product, error) {
	return s.productRepo.List()
}

func (s *catalogService) UpdateProduct(id int64, req ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	product := models.Product{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		CategoryID:    req.CategoryID,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		RetailPrice:   req.RetailPrice,
		MinStockLevel: defaultMinStock,
	}
	if product.Unit == "" {
		product.Unit = defaultUnit
	}
	if req.MinStock != nil {
		product.MinStockLevel = *req.MinStock
	}
	if err := s.productRepo.Update(s.db, &product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteProduct(id int64) error {
	if err := s.productRepo.SoftDelete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	return nil
}

// --- Categories ---

func (s *catalogService) CreateCategory(name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	category := models.Category{Name: strings.TrimSpace(name)}
	if _, err := s.productRepo.CreateCategory(s.db, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	return s.productRepo.ListCategories()
}
