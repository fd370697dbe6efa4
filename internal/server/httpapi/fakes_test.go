package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/auth"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	productsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/products"
	transactionsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
	"github.com/shelfkeeper/shelfkeeper/internal/server/services"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

type fakeUserService struct {
	registerFn func(ctx context.Context, username, email, password, role string) (*models.User, error)
	loginFn    func(ctx context.Context, username, password string) (*models.User, *services.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	logoutFn   func(ctx context.Context, refreshToken string) error
	profileFn  func(ctx context.Context, userID int64) (*models.User, error)
	listFn     func(ctx context.Context) ([]*models.User, error)
}

func (f *fakeUserService) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	return f.registerFn(ctx, username, email, password, role)
}
func (f *fakeUserService) Login(ctx context.Context, username, password string) (*models.User, *services.TokenPair, error) {
	return f.loginFn(ctx, username, password)
}
func (f *fakeUserService) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshFn(ctx, refreshToken)
}
func (f *fakeUserService) Logout(ctx context.Context, refreshToken string) error {
	return f.logoutFn(ctx, refreshToken)
}
func (f *fakeUserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return f.profileFn(ctx, userID)
}
func (f *fakeUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return f.listFn(ctx)
}

type fakeProductService struct {
	listFn     func(ctx context.Context, filter productsrepo.ListFilter) ([]*models.Product, int64, error)
	getFn      func(ctx context.Context, id int64) (*models.Product, error)
	createFn   func(ctx context.Context, product *models.Product) (*models.Product, error)
	updateFn   func(ctx context.Context, product *models.Product) (*models.Product, error)
	deleteFn   func(ctx context.Context, id int64) error
	expiringFn func(ctx context.Context, days int) ([]*models.Product, error)
	expiredFn  func(ctx context.Context) ([]*models.Product, error)
	lowStockFn func(ctx context.Context, threshold int64) ([]*models.Product, error)
}

func (f *fakeProductService) List(ctx context.Context, filter productsrepo.ListFilter) ([]*models.Product, int64, error) {
	return f.listFn(ctx, filter)
}
func (f *fakeProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return f.getFn(ctx, id)
}
func (f *fakeProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return f.createFn(ctx, product)
}
func (f *fakeProductService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return f.updateFn(ctx, product)
}
func (f *fakeProductService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeProductService) Expiring(ctx context.Context, days int) ([]*models.Product, error) {
	return f.expiringFn(ctx, days)
}
func (f *fakeProductService) Expired(ctx context.Context) ([]*models.Product, error) {
	return f.expiredFn(ctx)
}
func (f *fakeProductService) LowStock(ctx context.Context, threshold int64) ([]*models.Product, error) {
	return f.lowStockFn(ctx, threshold)
}

type fakeCategoryService struct {
	listFn   func(ctx context.Context) ([]*models.Category, error)
	createFn func(ctx context.Context, name, description string) (*models.Category, error)
	updateFn func(ctx context.Context, id int64, name, description string) (*models.Category, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeCategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return f.listFn(ctx)
}
func (f *fakeCategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	return f.createFn(ctx, name, description)
}
func (f *fakeCategoryService) Update(ctx context.Context, id int64, name, description string) (*models.Category, error) {
	return f.updateFn(ctx, id, name, description)
}
func (f *fakeCategoryService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

type fakeSupplierService struct {
	listFn     func(ctx context.Context) ([]*models.Supplier, error)
	getFn      func(ctx context.Context, id int64) (*models.Supplier, error)
	createFn   func(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	updateFn   func(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	deleteFn   func(ctx context.Context, id int64) error
	productsFn func(ctx context.Context, supplierID int64) ([]*models.Product, error)
}

func (f *fakeSupplierService) List(ctx context.Context) ([]*models.Supplier, error) {
	return f.listFn(ctx)
}
func (f *fakeSupplierService) Get(ctx context.Context, id int64) (*models.Supplier, error) {
	return f.getFn(ctx, id)
}
func (f *fakeSupplierService) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	return f.createFn(ctx, supplier)
}
func (f *fakeSupplierService) Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	return f.updateFn(ctx, supplier)
}
func (f *fakeSupplierService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeSupplierService) Products(ctx context.Context, supplierID int64) ([]*models.Product, error) {
	return f.productsFn(ctx, supplierID)
}

type fakeTransactionService struct {
	listFn     func(ctx context.Context, filter transactionsrepo.ListFilter) ([]*models.Transaction, int64, error)
	stockInFn  func(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error)
	stockOutFn func(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error)
	statsFn    func(ctx context.Context, from, to time.Time) (*models.TransactionStats, error)
}

func (f *fakeTransactionService) List(ctx context.Context, filter transactionsrepo.ListFilter) ([]*models.Transaction, int64, error) {
	return f.listFn(ctx, filter)
}
func (f *fakeTransactionService) StockIn(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error) {
	return f.stockInFn(ctx, productID, userID, quantity, notes)
}
func (f *fakeTransactionService) StockOut(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error) {
	return f.stockOutFn(ctx, productID, userID, quantity, notes)
}
func (f *fakeTransactionService) Stats(ctx context.Context, from, to time.Time) (*models.TransactionStats, error) {
	return f.statsFn(ctx, from, to)
}

type fakeBarcodeService struct {
	searchFn   func(ctx context.Context, code string) (*models.Product, error)
	imageURLFn func(ctx context.Context, productID int64) (string, error)
}

func (f *fakeBarcodeService) Search(ctx context.Context, code string) (*models.Product, error) {
	return f.searchFn(ctx, code)
}
func (f *fakeBarcodeService) ImageURL(ctx context.Context, productID int64) (string, error) {
	return f.imageURLFn(ctx, productID)
}

type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(ctx context.Context) error {
	return f.err
}

type handlerDeps struct {
	users        *fakeUserService
	products     *fakeProductService
	categories   *fakeCategoryService
	suppliers    *fakeSupplierService
	transactions *fakeTransactionService
	barcodes     *fakeBarcodeService
	db           *fakePinger
}

func newTestHandler() (*Handler, *handlerDeps) {
	deps := &handlerDeps{
		users:        &fakeUserService{},
		products:     &fakeProductService{},
		categories:   &fakeCategoryService{},
		suppliers:    &fakeSupplierService{},
		transactions: &fakeTransactionService{},
		barcodes:     &fakeBarcodeService{},
		db:           &fakePinger{},
	}
	h := NewHandler(deps.users, deps.products, deps.categories, deps.suppliers,
		deps.transactions, deps.barcodes, deps.db, testLogger())
	return h, deps
}

const testSecret = "test-secret"

// newTestRouter wires the handler into the full route tree so tests cover
// routing and auth middleware as well.
func newTestRouter() (http.Handler, *handlerDeps) {
	h, deps := newTestHandler()
	router := NewRouter(h, NewAuthMiddleware(testSecret), "http://localhost:3000")
	return router, deps
}

func accessToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}
