package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/electrostorehq/backend/api/controllers"
	"github.com/electrostorehq/backend/api/middleware"
	authsvc "github.com/electrostorehq/backend/internal/auth"
	cartsvc "github.com/electrostorehq/backend/internal/cart"
	categorysvc "github.com/electrostorehq/backend/internal/categories"
	ordersvc "github.com/electrostorehq/backend/internal/orders"
	paymentsvc "github.com/electrostorehq/backend/internal/payments"
	productsvc "github.com/electrostorehq/backend/internal/products"
	usersvc "github.com/electrostorehq/backend/internal/users"
	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/enums"
	"github.com/electrostorehq/backend/pkg/logger"
	"github.com/electrostorehq/backend/pkg/metrics"
	pkgredis "github.com/electrostorehq/backend/pkg/redis"
)

// Services collects the domain services the router exposes.
type Services struct {
	Auth       authsvc.Service
	Users      usersvc.Service
	Categories categorysvc.Service
	Products   productsvc.Service
	Cart       cartsvc.Service
	Orders     ordersvc.Service
	Payments   paymentsvc.Service
}

// Dependencies collects the infrastructure the router and its middleware need.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	Redis       *pkgredis.Client
	HealthProbe map[string]controllers.Pinger
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Dependencies, services Services) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.IdentityFilter(cfg.JWT, identityResolver{users: services.Users}, logg))
	if deps.Redis != nil {
		r.Use(middleware.Idempotency(deps.Redis, logg))
	}

	loginLimiter := passthrough
	if deps.Redis != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		)
		loginLimiter = middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)
	}

	requireAuth := middleware.RequireAuth(logg)
	requireAdmin := middleware.RequireRoles(logg, enums.RoleAdmin)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthProbe))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/generate-token", controllers.GenerateToken(services.Auth, logg))
		r.Post("/regenerate-token", controllers.RegenerateToken(services.Auth, logg))
		r.With(loginLimiter).Post("/login-with-google", controllers.LoginWithGoogle(services.Auth, logg))
		r.With(requireAuth).Get("/current", controllers.CurrentUser(services.Auth, logg))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", controllers.CreateUser(services.Users, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{userId}", controllers.GetUser(services.Users, logg))
			r.Put("/{userId}", controllers.UpdateUser(services.Users, logg))
			r.Post("/{userId}/image", controllers.UploadUserImage(services.Users, logg))
			r.Get("/{userId}/image", controllers.ServeUserImage(services.Users, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", controllers.ListUsers(services.Users, logg))
			r.Get("/email/{email}", controllers.GetUserByEmail(services.Users, logg))
			r.Get("/search/{keywords}", controllers.SearchUsers(services.Users, logg))
			r.Delete("/{userId}", controllers.DeleteUser(services.Users, logg))
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", controllers.ListCategories(services.Categories, logg))
		r.Get("/{categoryId}", controllers.GetCategory(services.Categories, logg))
		r.Get("/{categoryId}/products", controllers.ListProductsByCategory(services.Products, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", controllers.CreateCategory(services.Categories, logg))
			r.Put("/{categoryId}", controllers.UpdateCategory(services.Categories, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(services.Categories, logg))
			r.Post("/{categoryId}/products", controllers.CreateProductInCategory(services.Products, logg))
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(services.Products, logg))
		r.Get("/{productId}", controllers.GetProduct(services.Products, logg))
		r.Get("/search/{query}", controllers.SearchProducts(services.Products, logg))
		r.Get("/{productId}/image", controllers.ServeProductImage(services.Products, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", controllers.CreateProduct(services.Products, logg))
			r.Put("/{productId}", controllers.UpdateProduct(services.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(services.Products, logg))
			r.Put("/{productId}/categories/{categoryId}", controllers.AssignProductCategory(services.Products, logg))
			r.Post("/{productId}/image", controllers.UploadProductImage(services.Products, logg))
		})
	})

	r.Route("/carts/{userId}", func(r chi.Router) {
		r.Use(requireAuth)
		r.Put("/items", controllers.AddCartItem(services.Cart, logg))
		r.Delete("/items/{itemId}", controllers.RemoveCartItem(services.Cart, logg))
		r.Delete("/", controllers.ClearCart(services.Cart, logg))
		r.Get("/", controllers.GetCart(services.Cart, logg))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", controllers.CreateOrder(services.Orders, logg))
		r.Get("/users/{userId}", controllers.ListUserOrders(services.Orders, logg))
		r.Get("/{orderId}", controllers.GetOrder(services.Orders, logg))
		r.Put("/user/{orderId}", controllers.UpdateOrderBilling(services.Orders, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", controllers.ListOrders(services.Orders, logg))
			r.Put("/admin/{orderId}", controllers.AdminUpdateOrder(services.Orders, logg))
			r.Delete("/{orderId}", controllers.DeleteOrder(services.Orders, logg))
		})
	})

	r.Route("/payments", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/initiate-payment/{orderId}", controllers.InitiatePayment(services.Payments, logg))
		r.Post("/capture/{orderId}", controllers.CapturePayment(services.Payments, logg))
	})

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}

// identityResolver looks up the full identity behind a verified token subject.
type identityResolver struct {
	users usersvc.Service
}

func (a identityResolver) ResolveIdentity(ctx context.Context, email string) (*middleware.Identity, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	roles := make([]enums.Role, 0, len(user.Roles))
	for _, raw := range user.Roles {
		role, err := enums.ParseRole(raw)
		if err != nil {
			continue
		}
		roles = append(roles, role)
	}

	return &middleware.Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
		Roles:  roles,
	}, nil
}
