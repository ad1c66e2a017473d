package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/electrostorehq/backend/api/controllers"
	authsvc "github.com/electrostorehq/backend/internal/auth"
	cartsvc "github.com/electrostorehq/backend/internal/cart"
	categorysvc "github.com/electrostorehq/backend/internal/categories"
	ordersvc "github.com/electrostorehq/backend/internal/orders"
	paymentsvc "github.com/electrostorehq/backend/internal/payments"
	productsvc "github.com/electrostorehq/backend/internal/products"
	usersvc "github.com/electrostorehq/backend/internal/users"
	pkgauth "github.com/electrostorehq/backend/pkg/auth"
	"github.com/electrostorehq/backend/pkg/config"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/logger"
	"github.com/electrostorehq/backend/pkg/pagination"
)

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.TokenResponse, error) {
	return &authsvc.TokenResponse{Token: "stub-token"}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.TokenResponse, error) {
	return &authsvc.TokenResponse{Token: "stub-token"}, nil
}

func (stubAuthService) LoginWithGoogle(ctx context.Context, req authsvc.GoogleLoginRequest) (*authsvc.TokenResponse, error) {
	return &authsvc.TokenResponse{Token: "stub-token"}, nil
}

func (stubAuthService) Current(ctx context.Context, email string) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{Email: email}, nil
}

type stubUsersService struct {
	users map[string]*usersvc.UserDTO
}

func (s stubUsersService) Create(ctx context.Context, req usersvc.CreateUserRequest) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
}

func (s stubUsersService) Update(ctx context.Context, id uuid.UUID, req usersvc.UpdateUserRequest) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (s stubUsersService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s stubUsersService) Get(ctx context.Context, id uuid.UUID) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (s stubUsersService) GetByEmail(ctx context.Context, email string) (*usersvc.UserDTO, error) {
	if user, ok := s.users[email]; ok {
		return user, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (s stubUsersService) List(ctx context.Context, page pagination.Params) (pagination.Page[usersvc.UserDTO], error) {
	return pagination.NewPage([]usersvc.UserDTO{}, page, 0), nil
}

func (s stubUsersService) Search(ctx context.Context, keyword string) ([]usersvc.UserDTO, error) {
	return nil, nil
}

func (s stubUsersService) UploadImage(ctx context.Context, id uuid.UUID, filename string, contents io.Reader) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (s stubUsersService) OpenImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type stubCategoriesService struct{}

func (stubCategoriesService) Create(ctx context.Context, req categorysvc.CreateCategoryRequest) (*categorysvc.CategoryDTO, error) {
	return &categorysvc.CategoryDTO{ID: uuid.New(), Title: req.Title}, nil
}

func (stubCategoriesService) Update(ctx context.Context, id uuid.UUID, req categorysvc.UpdateCategoryRequest) (*categorysvc.CategoryDTO, error) {
	return &categorysvc.CategoryDTO{ID: id}, nil
}

func (stubCategoriesService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCategoriesService) Get(ctx context.Context, id uuid.UUID) (*categorysvc.CategoryDTO, error) {
	return &categorysvc.CategoryDTO{ID: id}, nil
}

func (stubCategoriesService) List(ctx context.Context, page pagination.Params) (pagination.Page[categorysvc.CategoryDTO], error) {
	return pagination.NewPage([]categorysvc.CategoryDTO{}, page, 0), nil
}

type stubProductsService struct{}

func (stubProductsService) Create(ctx context.Context, req productsvc.CreateProductRequest) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: uuid.New(), Title: req.Title}, nil
}

func (stubProductsService) CreateInCategory(ctx context.Context, categoryID uuid.UUID, req productsvc.CreateProductRequest) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: uuid.New(), Title: req.Title}, nil
}

func (stubProductsService) Update(ctx context.Context, id uuid.UUID, req productsvc.UpdateProductRequest) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id}, nil
}

func (stubProductsService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubProductsService) Get(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id}, nil
}

func (stubProductsService) List(ctx context.Context, page pagination.Params) (pagination.Page[productsvc.ProductDTO], error) {
	return pagination.NewPage([]productsvc.ProductDTO{}, page, 0), nil
}

func (stubProductsService) ListLive(ctx context.Context, page pagination.Params) (pagination.Page[productsvc.ProductDTO], error) {
	return pagination.NewPage([]productsvc.ProductDTO{}, page, 0), nil
}

func (stubProductsService) ListByCategory(ctx context.Context, categoryID uuid.UUID, page pagination.Params) (pagination.Page[productsvc.ProductDTO], error) {
	return pagination.NewPage([]productsvc.ProductDTO{}, page, 0), nil
}

func (stubProductsService) Search(ctx context.Context, keyword string, page pagination.Params) (pagination.Page[productsvc.ProductDTO], error) {
	return pagination.NewPage([]productsvc.ProductDTO{}, page, 0), nil
}

func (stubProductsService) AssignCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id}, nil
}

func (stubProductsService) UploadImage(ctx context.Context, id uuid.UUID, filename string, contents io.Reader) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id}, nil
}

func (stubProductsService) OpenImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, userID uuid.UUID, req cartsvc.AddItemRequest) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (stubCartService) GetByUser(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, req ordersvc.CreateOrderRequest) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: uuid.New()}, nil
}

func (stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: id}, nil
}

func (stubOrdersService) List(ctx context.Context, page pagination.Params) (pagination.Page[ordersvc.OrderDTO], error) {
	return pagination.NewPage([]ordersvc.OrderDTO{}, page, 0), nil
}

func (stubOrdersService) ListByUser(ctx context.Context, userID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	return nil, nil
}

func (stubOrdersService) UpdateByAdmin(ctx context.Context, id uuid.UUID, req ordersvc.AdminUpdateOrderRequest) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: id}, nil
}

func (stubOrdersService) UpdateBilling(ctx context.Context, id, userID uuid.UUID, req ordersvc.UpdateBillingRequest) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: id}, nil
}

func (stubOrdersService) Remove(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubPaymentsService struct{}

func (stubPaymentsService) Initiate(ctx context.Context, orderID uuid.UUID) (*paymentsvc.InitiatePaymentResponse, error) {
	return &paymentsvc.InitiatePaymentResponse{OrderID: orderID.String()}, nil
}

func (stubPaymentsService) Capture(ctx context.Context, orderID uuid.UUID, req paymentsvc.CapturePaymentRequest) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

const (
	normalEmail = "shopper@example.com"
	adminEmail  = "admin@example.com"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "electrostore-test",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	users := stubUsersService{users: map[string]*usersvc.UserDTO{
		normalEmail: {ID: uuid.New(), Email: normalEmail, Roles: []string{"ROLE_NORMAL"}},
		adminEmail:  {ID: uuid.New(), Email: adminEmail, Roles: []string{"ROLE_ADMIN", "ROLE_NORMAL"}},
	}}
	return NewRouter(
		Dependencies{
			Config:      cfg,
			Logger:      logg,
			HealthProbe: map[string]controllers.Pinger{"database": stubPinger{}},
		},
		Services{
			Auth:       stubAuthService{},
			Users:      users,
			Categories: stubCategoriesService{},
			Products:   stubProductsService{},
			Cart:       stubCartService{},
			Orders:     stubOrdersService{},
			Payments:   stubPaymentsService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, email string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), email)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestCreateUserIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"name":"Priya","email":"priya@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for registration got %d", resp.Code)
	}
}

func TestLoginRouteIsWired(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"shopper@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/generate-token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}
}

func TestCurrentRequiresToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	anonymous := httptest.NewRequest(http.MethodGet, "/auth/current", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anonymous)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/auth/current", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, normalEmail))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestCartRequiresAuthentication(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/carts/" + uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous cart read got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, target, nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, normalEmail))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated cart read got %d", resp.Code)
	}
}

func TestUserListRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/users", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, normalEmail))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/users", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, adminEmail))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestProductWritesRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"title":"Noise Cancelling Headphones","description":"Over-ear, 30h battery","price":"199.99","quantity":5}`

	nonAdmin := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	nonAdmin.Header.Set("Content-Type", "application/json")
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, normalEmail))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin product create got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	admin.Header.Set("Content-Type", "application/json")
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, adminEmail))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin product create got %d", resp.Code)
	}
}

func TestCatalogReadsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, target := range []string{"/products", "/categories", "/products/search/headphones"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", target, resp.Code)
		}
	}
}

func TestOrderDeleteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/orders/" + uuid.NewString()

	nonAdmin := httptest.NewRequest(http.MethodDelete, target, nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, normalEmail))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin order delete got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodDelete, target, nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, adminEmail))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin order delete got %d", resp.Code)
	}
}

func TestPaymentRoutesRequireAuthentication(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/payments/initiate-payment/" + uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous payment got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, target, nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, normalEmail))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated payment got %d", resp.Code)
	}
}

func TestBadJSONPayloadRejected(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}
