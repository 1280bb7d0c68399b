package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/routes"
	"rental-backend/services"
	"rental-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := []byte(utils.EnvOrDefault("JWT_SECRET", ""))
	if len(jwtSecret) == 0 {
		log.Println("⚠️  JWT_SECRET not set; using an insecure development secret")
		jwtSecret = []byte("dev-secret-change-me")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	buildingService := services.NewBuildingService(db)
	roomService := services.NewRoomService(db)
	tenantService := services.NewTenantService(db)
	catalogService := services.NewCatalogService(db)
	contractService := services.NewContractService(db, roomService, tenantService, catalogService)
	invoiceService := services.NewInvoiceService(db, contractService)

	// Initialize controllers
	authController := controllers.NewAuthController(db, jwtSecret)
	buildingController := controllers.NewBuildingController(buildingService)
	roomController := controllers.NewRoomController(roomService)
	tenantController := controllers.NewTenantController(tenantService)
	serviceController := controllers.NewServiceController(catalogService)
	contractController := controllers.NewContractController(contractService)
	invoiceController := controllers.NewInvoiceController(invoiceService)
	pricingController := controllers.NewPricingController()

	// Build router
	router := routes.SetupRouter(
		authController,
		buildingController,
		roomController,
		tenantController,
		serviceController,
		contractController,
		invoiceController,
		pricingController,
		jwtSecret,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
