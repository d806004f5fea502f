package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"retail_backend/internal/models"
)

// LocationRepository defines the interface for store and warehouse CRUD.
// Both are soft-deleted via is_active; listings only return active rows.
type LocationRepository interface {
	// Store methods
	CreateStore(executor SQLExecutor, store *models.Store) (int64, error)
	GetStoreByID(id int64) (*models.Store, error)
	ListStores() ([]models.Store, error)
	UpdateStore(executor SQLExecutor, store *models.Store) error
	SoftDeleteStore(executor SQLExecutor, id int64) error

	// Warehouse methods
	CreateWarehouse(executor SQLExecutor, warehouse *models.Warehouse) (int64, error)
	GetWarehouseByID(id int64) (*models.Warehouse, error)
	ListWarehouses() ([]models.Warehouse, error)
	UpdateWarehouse(executor SQLExecutor, warehouse *models.Warehouse) error
	SoftDeleteWarehouse(executor SQLExecutor, id int64) error
}

type locationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new instance of LocationRepository.
func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

// --- Store Methods ---

func (r *locationRepository) CreateStore(executor SQLExecutor, store *models.Store) (int64, error) {
	query := `INSERT INTO stores (name, address, phone, is_active) VALUES ($1, $2, $3, TRUE) RETURNING id_store`
	err := executor.QueryRow(query, store.Name, store.Address, store.Phone).Scan(&store.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating store: %v", ErrDatabaseError, err)
	}
	return store.ID, nil
}

func (r *locationRepository) GetStoreByID(id int64) (*models.Store, error) {
	store := &models.Store{}
	query := `SELECT id_store, name, address, phone, is_active FROM stores WHERE id_store = $1 AND is_active = TRUE`
	err := r.db.QueryRow(query, id).Scan(&store.ID, &store.Name, &store.Address, &store.Phone, &store.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting store by ID %d: %v", ErrDatabaseError, id, err)
	}
	return store, nil
}

func (r *locationRepository) ListStores() ([]models.Store, error) {
	stores := []models.Store{}
	query := `SELECT id_store, name, address, phone, is_active FROM stores WHERE is_active = TRUE ORDER BY name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stores: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanning store: %v", ErrDatabaseError, err)
		}
		stores = append(stores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating store rows: %v", ErrDatabaseError, err)
	}
	return stores, nil
}

func (r *locationRepository) UpdateStore(executor SQLExecutor, store *models.Store) error {
	query := `UPDATE stores SET name = $1, address = $2, phone = $3 WHERE id_store = $4`
	result, err := executor.Exec(query, store.Name, store.Address, store.Phone, store.ID)
	if err != nil {
		return fmt.Errorf("%w: updating store ID %d: %v", ErrDatabaseError, store.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *locationRepository) SoftDeleteStore(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`UPDATE stores SET is_active = FALSE WHERE id_store = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deactivating store ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Warehouse Methods ---

func (r *locationRepository) CreateWarehouse(executor SQLExecutor, warehouse *models.Warehouse) (int64, error) {
	query := `INSERT INTO warehouses (name, address, phone, area, is_active) VALUES ($1, $2, $3, $4, TRUE) RETURNING id_warehouse`
	err := executor.QueryRow(query, warehouse.Name, warehouse.Address, warehouse.Phone, warehouse.Area).Scan(&warehouse.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating warehouse: %v", ErrDatabaseError, err)
	}
	return warehouse.ID, nil
}

func (r *locationRepository) GetWarehouseByID(id int64) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	query := `SELECT id_warehouse, name, address, phone, area, is_active FROM warehouses WHERE id_warehouse = $1 AND is_active = TRUE`
	err := r.db.QueryRow(query, id).Scan(&warehouse.ID, &warehouse.Name, &warehouse.Address, &warehouse.Phone, &warehouse.Area, &warehouse.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting warehouse by ID %d: %v", ErrDatabaseError, id, err)
	}
	return warehouse, nil
}

func (r *locationRepository) ListWarehouses() ([]models.Warehouse, error) {
	warehouses := []models.Warehouse{}
	query := `SELECT id_warehouse, name, address, phone, area, is_active FROM warehouses WHERE is_active = TRUE ORDER BY name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying warehouses: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var w models.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Phone, &w.Area, &w.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanning warehouse: %v", ErrDatabaseError, err)
		}
		warehouses = append(warehouses, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating warehouse rows: %v", ErrDatabaseError, err)
	}
	return warehouses, nil
}

func (r *locationRepository) UpdateWarehouse(executor SQLExecutor, warehouse *models.Warehouse) error {
	query := `UPDATE warehouses SET name = $1, address = $2, phone = $3, area = $4 WHERE id_warehouse = $5`
	result, err := executor.Exec(query, warehouse.Name, warehouse.Address, warehouse.Phone, warehouse.Area, warehouse.ID)
	if err != nil {
		return fmt.Errorf("%w: updating warehouse ID %d: %v", ErrDatabaseError, warehouse.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *locationRepository) SoftDeleteWarehouse(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`UPDATE warehouses SET is_active = FALSE WHERE id_warehouse = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deactivating warehouse ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
