package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"retail_backend/internal/models"

	"github.com/lib/pq"
)

// EmployeeRepository defines the interface for employee-related database operations.
type EmployeeRepository interface {
	Create(executor SQLExecutor, employee *models.Employee) (int64, error)
	GetByID(id int64) (*models.Employee, error)
	GetByLogin(login string) (*models.Employee, error)
	List() ([]models.Employee, error)
	Update(executor SQLExecutor, employee *models.Employee) error
	SoftDelete(executor SQLExecutor, id int64) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(executor SQLExecutor, employee *models.Employee) (int64, error) {
	query := `INSERT INTO employees (login, password_hash, full_name, role, store_id, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, TRUE, $6)
	          RETURNING id_employee`
	err := executor.QueryRow(query,
		employee.Login, employee.PasswordHash, employee.FullName, employee.Role, employee.StoreID, time.Now(),
	).Scan(&employee.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: login '%s' already taken", ErrDuplicateKey, employee.Login)
		}
		return 0, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee.ID, nil
}

func (r *employeeRepository) GetByID(id int64) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT e.id_employee, e.login, e.password_hash, e.full_name, e.role, e.store_id, e.is_active, e.created_at,
	                 s.name AS store_name
	          FROM employees e
	          LEFT JOIN stores s ON s.id_store = e.store_id
	          WHERE e.id_employee = $1`
	var storeName sql.NullString
	err := r.db.QueryRow(query, id).Scan(
		&employee.ID, &employee.Login, &employee.PasswordHash, &employee.FullName, &employee.Role,
		&employee.StoreID, &employee.IsActive, &employee.CreatedAt, &storeName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by ID %d: %v", ErrDatabaseError, id, err)
	}
	if storeName.Valid {
		name := storeName.String
		employee.StoreName = &name
	}
	return employee, nil
}

func (r *employeeRepository) GetByLogin(login string) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT id_employee, login, password_hash, full_name, role, store_id, is_active, created_at
	          FROM employees
	          WHERE login = $1`
	err := r.db.QueryRow(query, login).Scan(
		&employee.ID, &employee.Login, &employee.PasswordHash, &employee.FullName, &employee.Role,
		&employee.StoreID, &employee.IsActive, &employee.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by login: %v", ErrDatabaseError, err)
	}
	return employee, nil
}

func (r *employeeRepository) List() ([]models.Employee, error) {
	employees := []models.Employee{}
	query := `SELECT e.id_employee, e.login, e.full_name, e.role, e.store_id, e.is_active, e.created_at,
	                 s.name AS store_name
	          FROM employees e
	          LEFT JOIN stores s ON s.id_store = e.store_id
	          WHERE e.role IN ('admin', 'seller')
	          ORDER BY e.role, e.full_name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Employee
		var storeName sql.NullString
		if err := rows.Scan(&e.ID, &e.Login, &e.FullName, &e.Role, &e.StoreID, &e.IsActive, &e.CreatedAt, &storeName); err != nil {
			return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
		}
		if storeName.Valid {
			name := storeName.String
			e.StoreName = &name
		}
		employees = append(employees, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *employeeRepository) Update(executor SQLExecutor, employee *models.Employee) error {
	query := `UPDATE employees SET full_name = $1, role = $2, store_id = $3, is_active = $4 WHERE id_employee = $5`
	result, err := executor.Exec(query, employee.FullName, employee.Role, employee.StoreID, employee.IsActive, employee.ID)
	if err != nil {
		return fmt.Errorf("%w: updating employee ID %d: %v", ErrDatabaseError, employee.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) SoftDelete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`UPDATE employees SET is_active = FALSE WHERE id_employee = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deactivating employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
