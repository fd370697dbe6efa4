package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	categoriesrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/categories"
	productsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/products"
	refreshtokensrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/refreshtokens"
	suppliersrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/suppliers"
	transactionsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
	usersrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/users"
)

// --- shared helpers and fakes ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byUsernameOut *models.User
	byUsernameErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	listOut []*models.User
	listErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}
func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.byUsernameErr != nil {
		return nil, f.byUsernameErr
	}
	return f.byUsernameOut, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error

	created []string
	deleted []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	f.created = append(f.created, token)
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}
func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context) error { return nil }

type fakeCategoriesRepo struct {
	createOut *models.Category
	createErr error

	byIDOut *models.Category
	byIDErr error

	byNameOut *models.Category
	byNameErr error

	listOut []*models.Category
	listErr error

	updateErr error
	deleteErr error

	productCount    int64
	productCountErr error
}

func (f *fakeCategoriesRepo) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	c.ID = 1
	return c, nil
}
func (f *fakeCategoriesRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeCategoriesRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	if f.byNameErr != nil {
		return nil, f.byNameErr
	}
	return f.byNameOut, nil
}
func (f *fakeCategoriesRepo) List(ctx context.Context) ([]*models.Category, error) {
	return f.listOut, f.listErr
}
func (f *fakeCategoriesRepo) Update(ctx context.Context, c *models.Category) error { return f.updateErr }
func (f *fakeCategoriesRepo) Delete(ctx context.Context, id int64) error           { return f.deleteErr }
func (f *fakeCategoriesRepo) ProductCount(ctx context.Context, id int64) (int64, error) {
	return f.productCount, f.productCountErr
}

type fakeSuppliersRepo struct {
	createErr error
	byIDOut   *models.Supplier
	byIDErr   error
	byNameOut *models.Supplier
	byNameErr error
	listOut   []*models.Supplier
	listErr   error
	updateErr error
	deleteErr error
}

func (f *fakeSuppliersRepo) Create(ctx context.Context, s *models.Supplier) (*models.Supplier, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = 1
	return s, nil
}
func (f *fakeSuppliersRepo) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeSuppliersRepo) GetByName(ctx context.Context, name string) (*models.Supplier, error) {
	if f.byNameErr != nil {
		return nil, f.byNameErr
	}
	return f.byNameOut, nil
}
func (f *fakeSuppliersRepo) List(ctx context.Context) ([]*models.Supplier, error) {
	return f.listOut, f.listErr
}
func (f *fakeSuppliersRepo) Update(ctx context.Context, s *models.Supplier) error { return f.updateErr }
func (f *fakeSuppliersRepo) Delete(ctx context.Context, id int64) error           { return f.deleteErr }

type fakeProductsRepo struct {
	createOut *models.Product
	createErr error

	byIDOut *models.Product
	byIDErr error

	bySKUOut *models.Product
	bySKUErr error

	byBarcodeOut *models.Product
	byBarcodeErr error

	listOut   []*models.Product
	listTotal int64
	listErr   error

	bySupplierOut []*models.Product
	bySupplierErr error

	updateErr error
	deleteErr error

	setBarcodeErr   error
	setBarcodeCalls []string

	adjustOut int64
	adjustErr error
	adjusted  []int64

	expiringOut []*models.Product
	expiredOut  []*models.Product
	lowStockOut []*models.Product
}

func (f *fakeProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	p.ID = 1
	return p, nil
}
func (f *fakeProductsRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeProductsRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if f.bySKUErr != nil {
		return nil, f.bySKUErr
	}
	return f.bySKUOut, nil
}
func (f *fakeProductsRepo) GetByBarcode(ctx context.Context, code string) (*models.Product, error) {
	if f.byBarcodeErr != nil {
		return nil, f.byBarcodeErr
	}
	return f.byBarcodeOut, nil
}
func (f *fakeProductsRepo) List(ctx context.Context, filter productsrepo.ListFilter) ([]*models.Product, int64, error) {
	return f.listOut, f.listTotal, f.listErr
}
func (f *fakeProductsRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*models.Product, error) {
	return f.bySupplierOut, f.bySupplierErr
}
func (f *fakeProductsRepo) Update(ctx context.Context, p *models.Product) error { return f.updateErr }
func (f *fakeProductsRepo) SetBarcode(ctx context.Context, id int64, code string) error {
	f.setBarcodeCalls = append(f.setBarcodeCalls, code)
	return f.setBarcodeErr
}
func (f *fakeProductsRepo) AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error) {
	if f.adjustErr != nil {
		return 0, f.adjustErr
	}
	f.adjusted = append(f.adjusted, delta)
	return f.adjustOut, nil
}
func (f *fakeProductsRepo) Delete(ctx context.Context, id int64) error { return f.deleteErr }
func (f *fakeProductsRepo) Expiring(ctx context.Context, within time.Duration) ([]*models.Product, error) {
	return f.expiringOut, nil
}
func (f *fakeProductsRepo) Expired(ctx context.Context) ([]*models.Product, error) {
	return f.expiredOut, nil
}
func (f *fakeProductsRepo) LowStock(ctx context.Context, threshold int64) ([]*models.Product, error) {
	return f.lowStockOut, nil
}

type fakeTransactionsRepo struct {
	createOut *models.Transaction
	createErr error

	listOut   []*models.Transaction
	listTotal int64
	listErr   error

	statsOut *models.TransactionStats
	statsErr error

	created []*models.Transaction
}

func (f *fakeTransactionsRepo) Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, tr)
	if f.createOut != nil {
		return f.createOut, nil
	}
	tr.ID = 1
	tr.Date = time.Now()
	return tr, nil
}
func (f *fakeTransactionsRepo) List(ctx context.Context, filter transactionsrepo.ListFilter) ([]*models.Transaction, int64, error) {
	return f.listOut, f.listTotal, f.listErr
}
func (f *fakeTransactionsRepo) Stats(ctx context.Context, from, to time.Time) (*models.TransactionStats, error) {
	return f.statsOut, f.statsErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	c  *fakeCategoriesRepo
	s  *fakeSuppliersRepo
	p  *fakeProductsRepo
	tr *fakeTransactionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Categories(db dbx.DBTX) categoriesrepo.Repository { return m.c }
func (m *fakeRepoManager) Suppliers(db dbx.DBTX) suppliersrepo.Repository   { return m.s }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository     { return m.p }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository {
	return m.tr
}

type fakeImageStore struct {
	uploadErr  error
	uploaded   map[string][]byte
	presignURL string
	presignErr error
}

func (f *fakeImageStore) Upload(ctx context.Context, key string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[key] = data
	return nil
}
func (f *fakeImageStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.presignURL, nil
}
