package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/storefront/internal/api/handlers"
	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/cache"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/health"
	"github.com/example/storefront/internal/metrics"
	repository "github.com/example/storefront/internal/repositories"
	service "github.com/example/storefront/internal/services"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	// Redis setup (guest carts + login rate limiting)
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	guestCarts := cache.NewRedisGuestCartStore(redisClient, cfg.GuestCart.TTL)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	// Services and handlers
	userService := service.NewUserService(repos.User, rateLimitRepo, cfg.Token.TTL)
	userHandler := handlers.NewUserHandler(userService)
	cartService := service.NewCartService(repos.Cart, guestCarts)
	cartHandler := handlers.NewCartHandler(cartService)
	guestCartHandler := handlers.NewGuestCartHandler(guestCarts)
	orderService := service.NewOrderService(repos.Order, repos.User, cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productService := service.NewProductService(repos.Product)
	productHandler := handlers.NewProductHandler(productService)
	authMiddleware := middleware.NewAuthMiddleware()

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error building health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/carts/{userId}", cartHandler.GetCart())
	routerMux.HandleFunc("PUT /api/v1/carts/{userId}", cartHandler.ReplaceCart())
	routerMux.HandleFunc("POST /api/v1/carts/{userId}/merge", cartHandler.MergeCart())
	routerMux.HandleFunc("GET /api/v1/guest-carts/{guestId}", guestCartHandler.GetGuestCart())
	routerMux.HandleFunc("PUT /api/v1/guest-carts/{guestId}", guestCartHandler.PutGuestCart())
	routerMux.HandleFunc("POST /api/v1/orders", orderHandler.PlaceOrder())
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("GET /api/v1/users/{userId}/orders", orderHandler.ListUserOrders())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.DeleteProduct()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.HandleFunc("GET /health", healthHandler.HandlerFunc)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

}
