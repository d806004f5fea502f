package services

import (
	"database/sql"
	"time"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
)

// --- transaction fakes ---

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(query string, args ...interface{}) (sql.Result, error) { return nil, nil }
func (t *fakeTx) QueryRow(query string, args ...interface{}) *sql.Row        { return nil }
func (t *fakeTx) Query(query string, args ...interface{}) (*sql.Rows, error) { return nil, nil }
func (t *fakeTx) Commit() error                                              { t.committed = true; return nil }
func (t *fakeTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeTxBeginner struct {
	last *fakeTx
}

func (b *fakeTxBeginner) Begin() (repositories.Tx, error) {
	b.last = &fakeTx{}
	return b.last, nil
}

// --- shift repository fake ---

type fakeShiftRepo struct {
	shifts map[int64]*models.Shift
	nextID int64
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[int64]*models.Shift), nextID: 1}
}

func (r *fakeShiftRepo) Create(_ repositories.SQLExecutor, shift *models.Shift) (int64, error) {
	shift.ID = r.nextID
	r.nextID++
	copied := *shift
	r.shifts[shift.ID] = &copied
	return shift.ID, nil
}

func (r *fakeShiftRepo) GetByID(id int64) (*models.Shift, error) {
	shift, ok := r.shifts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *shift
	return &copied, nil
}

func (r *fakeShiftRepo) GetOpenShift(_ repositories.SQLExecutor, employeeID, storeID int64) (*models.Shift, error) {
	var latest *models.Shift
	for _, shift := range r.shifts {
		if shift.EmployeeID != employeeID || shift.StoreID != storeID || shift.ShiftEnd != nil {
			continue
		}
		if latest == nil || shift.ShiftStart.After(latest.ShiftStart) {
			latest = shift
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeShiftRepo) Close(_ repositories.SQLExecutor, shiftID int64, end time.Time) error {
	shift, ok := r.shifts[shiftID]
	if !ok || shift.ShiftEnd != nil {
		return repositories.ErrNotFound
	}
	shift.ShiftEnd = &end
	shift.Status = models.ShiftStatusClosed
	return nil
}

// --- product repository fake ---

type fakePriceTag struct {
	price float64
	cost  float64
}

type fakeProductRepo struct {
	prices   map[int64]fakePriceTag
	articles map[string]bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		prices:   make(map[int64]fakePriceTag),
		articles: make(map[string]bool),
	}
}

func (r *fakeProductRepo) setPrice(productID int64, price, cost float64) {
	r.prices[productID] = fakePriceTag{price: price, cost: cost}
}

func (r *fakeProductRepo) GetPriceAndCost(productID int64) (float64, float64, error) {
	tag, ok := r.prices[productID]
	if !ok {
		return 0, 0, repositories.ErrNotFound
	}
	return tag.price, tag.cost, nil
}

func (r *fakeProductRepo) Create(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	if r.articles[product.Article] {
		return 0, repositories.ErrDuplicateKey
	}
	r.articles[product.Article] = true
	return 0, nil
}
func (r *fakeProductRepo) GetByID(int64) (*models.Product, error) {
	return nil, repositories.ErrNotFound
}
func (r *fakeProductRepo) List() ([]models.Product, error)                          { return nil, nil }
func (r *fakeProductRepo) Update(_ repositories.SQLExecutor, _ *models.Product) error { return nil }
func (r *fakeProductRepo) SoftDelete(_ repositories.SQLExecutor, _ int64) error       { return nil }
func (r *fakeProductRepo) CreateCategory(_ repositories.SQLExecutor, _ *models.Category) (int64, error) {
	return 0, nil
}
func (r *fakeProductRepo) ListCategories() ([]models.Category, error) { return nil, nil }

// --- stock repository fake ---

type stockKey struct {
	kind      models.LocationKind
	locID     int64
	productID int64
}

type fakeStockRepo struct {
	quantities map[stockKey]int
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{quantities: make(map[stockKey]int)}
}

func (r *fakeStockRepo) set(loc models.StockLocation, productID int64, qty int) {
	r.quantities[stockKey{loc.Kind, loc.ID, productID}] = qty
}

func (r *fakeStockRepo) get(loc models.StockLocation, productID int64) int {
	return r.quantities[stockKey{loc.Kind, loc.ID, productID}]
}

func (r *fakeStockRepo) GetQuantity(_ repositories.SQLExecutor, loc models.StockLocation, productID int64) (int, error) {
	return r.get(loc, productID), nil
}

func (r *fakeStockRepo) GetQuantityForUpdate(_ repositories.SQLExecutor, loc models.StockLocation, productID int64) (int, error) {
	return r.get(loc, productID), nil
}

func (r *fakeStockRepo) AddQuantity(_ repositories.SQLExecutor, loc models.StockLocation, productID int64, qty int) error {
	r.quantities[stockKey{loc.Kind, loc.ID, productID}] += qty
	return nil
}

func (r *fakeStockRepo) SubtractQuantity(_ repositories.SQLExecutor, loc models.StockLocation, productID int64, qty int) error {
	key := stockKey{loc.Kind, loc.ID, productID}
	if _, ok := r.quantities[key]; !ok {
		return repositories.ErrNotFound
	}
	r.quantities[key] -= qty
	return nil
}

func (r *fakeStockRepo) ListByLocation(loc models.StockLocation) ([]models.StockEntry, error) {
	var entries []models.StockEntry
	for key, qty := range r.quantities {
		if key.kind == loc.Kind && key.locID == loc.ID {
			entries = append(entries, models.StockEntry{ProductID: key.productID, Quantity: qty})
		}
	}
	return entries, nil
}

// --- operation repository fake ---

type fakeOperationRepo struct {
	operations map[int64]*models.Operation
	items      map[int64][]models.OperationItem
	nextOpID   int64
	nextItemID int64
}

func newFakeOperationRepo() *fakeOperationRepo {
	return &fakeOperationRepo{
		operations: make(map[int64]*models.Operation),
		items:      make(map[int64][]models.OperationItem),
		nextOpID:   1,
		nextItemID: 1,
	}
}

func (r *fakeOperationRepo) CreateOperation(_ repositories.SQLExecutor, op *models.Operation) (int64, error) {
	op.ID = r.nextOpID
	r.nextOpID++
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	copied := *op
	r.operations[op.ID] = &copied
	return op.ID, nil
}

func (r *fakeOperationRepo) CreateItem(_ repositories.SQLExecutor, item *models.OperationItem) (int64, error) {
	item.ID = r.nextItemID
	r.nextItemID++
	r.items[item.OperationID] = append(r.items[item.OperationID], *item)
	return item.ID, nil
}

func (r *fakeOperationRepo) GetByID(id int64) (*models.Operation, error) {
	op, ok := r.operations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *op
	return &copied, nil
}

func (r *fakeOperationRepo) GetItems(operationID int64) ([]models.OperationItem, error) {
	return r.items[operationID], nil
}

func (r *fakeOperationRepo) GetSoldQuantities(operationID int64) (map[int64]int, error) {
	sold := make(map[int64]int)
	for _, item := range r.items[operationID] {
		sold[item.ProductID] += item.Quantity
	}
	return sold, nil
}

func (r *fakeOperationRepo) GetReturnedQuantities(originalOperationID int64) (map[int64]int, error) {
	returned := make(map[int64]int)
	for _, op := range r.operations {
		if op.Type != models.OperationTypeReturn || op.OriginalOperationID == nil || *op.OriginalOperationID != originalOperationID {
			continue
		}
		for _, item := range r.items[op.ID] {
			returned[item.ProductID] += item.Quantity
		}
	}
	return returned, nil
}

func (r *fakeOperationRepo) ListByShift(shiftID int64) ([]models.Operation, error) {
	var ops []models.Operation
	for _, op := range r.operations {
		if op.ShiftID == shiftID {
			ops = append(ops, *op)
		}
	}
	return ops, nil
}

func (r *fakeOperationRepo) SumByShiftAndType(shiftID int64, opType string) (models.OperationTotals, error) {
	var totals models.OperationTotals
	for _, op := range r.operations {
		if op.ShiftID == shiftID && op.Type == opType {
			totals.Revenue += op.TotalRevenue
			totals.Cost += op.TotalCost
			totals.Profit += op.TotalProfit
		}
	}
	return totals, nil
}

func (r *fakeOperationRepo) SumByTypeAndDateRange(opType string, _ models.ReportFilters) (models.OperationTotals, error) {
	var totals models.OperationTotals
	for _, op := range r.operations {
		if op.Type == opType {
			totals.Revenue += op.TotalRevenue
			totals.Cost += op.TotalCost
			totals.Profit += op.TotalProfit
		}
	}
	return totals, nil
}

func (r *fakeOperationRepo) ListByDateRange(_ models.ReportFilters) ([]models.Operation, error) {
	var ops []models.Operation
	for _, op := range r.operations {
		ops = append(ops, *op)
	}
	return ops, nil
}

func (r *fakeOperationRepo) ListOpenSalesByStoreDate(storeID int64, _ string) ([]models.Operation, error) {
	var ops []models.Operation
	for _, op := range r.operations {
		if op.Type != models.OperationTypeSale || op.StoreID != storeID {
			continue
		}
		sold, _ := r.GetSoldQuantities(op.ID)
		returned, _ := r.GetReturnedQuantities(op.ID)
		open := false
		for productID, qty := range sold {
			if qty > returned[productID] {
				open = true
				break
			}
		}
		if open {
			ops = append(ops, *op)
		}
	}
	return ops, nil
}

// --- notification repository fake ---

type fakeNotificationRepo struct {
	created []models.Notification
}

func (r *fakeNotificationRepo) Create(_ repositories.SQLExecutor, n *models.Notification) (int64, error) {
	n.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *n)
	return n.ID, nil
}

func (r *fakeNotificationRepo) List(bool) ([]models.Notification, error) { return r.created, nil }
func (r *fakeNotificationRepo) MarkRead(_ repositories.SQLExecutor, _ int64) error {
	return nil
}
func (r *fakeNotificationRepo) ListLowStock() ([]models.LowStockEntry, error) { return nil, nil }

// --- employee repository fake ---

type fakeEmployeeRepo struct {
	employees map[int64]*models.Employee
	nextID    int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]*models.Employee), nextID: 1}
}

func (r *fakeEmployeeRepo) Create(_ repositories.SQLExecutor, employee *models.Employee) (int64, error) {
	for _, existing := range r.employees {
		if existing.Login == employee.Login {
			return 0, repositories.ErrDuplicateKey
		}
	}
	employee.ID = r.nextID
	r.nextID++
	copied := *employee
	r.employees[employee.ID] = &copied
	return employee.ID, nil
}

func (r *fakeEmployeeRepo) GetByID(id int64) (*models.Employee, error) {
	employee, ok := r.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *employee
	return &copied, nil
}

func (r *fakeEmployeeRepo) GetByLogin(login string) (*models.Employee, error) {
	for _, employee := range r.employees {
		if employee.Login == login {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEmployeeRepo) List() ([]models.Employee, error) {
	var employees []models.Employee
	for _, employee := range r.employees {
		employees = append(employees, *employee)
	}
	return employees, nil
}

func (r *fakeEmployeeRepo) Update(_ repositories.SQLExecutor, employee *models.Employee) error {
	existing, ok := r.employees[employee.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	employee.Login = existing.Login
	copied := *employee
	r.employees[employee.ID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) SoftDelete(_ repositories.SQLExecutor, id int64) error {
	employee, ok := r.employees[id]
	if !ok {
		return repositories.ErrNotFound
	}
	employee.IsActive = false
	return nil
}

// --- location repository fake ---

type fakeLocationRepo struct {
	stores     map[int64]*models.Store
	warehouses map[int64]*models.Warehouse
	nextID     int64
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{
		stores:     make(map[int64]*models.Store),
		warehouses: make(map[int64]*models.Warehouse),
		nextID:     1,
	}
}

func (r *fakeLocationRepo) CreateStore(_ repositories.SQLExecutor, store *models.Store) (int64, error) {
	store.ID = r.nextID
	r.nextID++
	copied := *store
	r.stores[store.ID] = &copied
	return store.ID, nil
}

func (r *fakeLocationRepo) GetStoreByID(id int64) (*models.Store, error) {
	store, ok := r.stores[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *store
	return &copied, nil
}

func (r *fakeLocationRepo) ListStores() ([]models.Store, error) {
	var stores []models.Store
	for _, store := range r.stores {
		stores = append(stores, *store)
	}
	return stores, nil
}

func (r *fakeLocationRepo) UpdateStore(_ repositories.SQLExecutor, store *models.Store) error {
	if _, ok := r.stores[store.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *store
	r.stores[store.ID] = &copied
	return nil
}

func (r *fakeLocationRepo) SoftDeleteStore(_ repositories.SQLExecutor, id int64) error {
	store, ok := r.stores[id]
	if !ok {
		return repositories.ErrNotFound
	}
	store.IsActive = false
	return nil
}

func (r *fakeLocationRepo) CreateWarehouse(_ repositories.SQLExecutor, warehouse *models.Warehouse) (int64, error) {
	warehouse.ID = r.nextID
	r.nextID++
	copied := *warehouse
	r.warehouses[warehouse.ID] = &copied
	return warehouse.ID, nil
}

func (r *fakeLocationRepo) GetWarehouseByID(id int64) (*models.Warehouse, error) {
	warehouse, ok := r.warehouses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *warehouse
	return &copied, nil
}

func (r *fakeLocationRepo) ListWarehouses() ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	for _, warehouse := range r.warehouses {
		warehouses = append(warehouses, *warehouse)
	}
	return warehouses, nil
}

func (r *fakeLocationRepo) UpdateWarehouse(_ repositories.SQLExecutor, warehouse *models.Warehouse) error {
	if _, ok := r.warehouses[warehouse.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *warehouse
	r.warehouses[warehouse.ID] = &copied
	return nil
}

func (r *fakeLocationRepo) SoftDeleteWarehouse(_ repositories.SQLExecutor, id int64) error {
	warehouse, ok := r.warehouses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	warehouse.IsActive = false
	return nil
}
