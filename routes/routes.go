package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances into the route tree. Everything
// under /api except login sits behind owner auth.
func SetupRouter(
	ac *controllers.AuthController,
	bc *controllers.BuildingController,
	rc *controllers.RoomController,
	tc *controllers.TenantController,
	sc *controllers.ServiceController,
	cc *controllers.ContractController,
	ic *controllers.InvoiceController,
	pc *controllers.PricingController,
	jwtSecret []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		authorized := api.Group("")
		authorized.Use(middleware.OwnerAuth(jwtSecret))
		{
			buildings := authorized.Group("/buildings")
			{
				buildings.GET("", bc.GetBuildings)
				buildings.GET("/:id", bc.GetBuilding)
				buildings.POST("", bc.CreateBuilding)
				buildings.PATCH("/:id", bc.UpdateBuilding)
				buildings.DELETE("/:id", bc.DeleteBuilding)
			}

			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", rc.GetRooms)
				rooms.GET("/:id", rc.GetRoom)
				rooms.POST("", rc.CreateRoom)
				rooms.PATCH("/:id", rc.UpdateRoom)
				rooms.PUT("/:id", rc.UpdateRoom)
				rooms.DELETE("/:id", rc.DeleteRoom)
			}

			tenants := authorized.Group("/tenants")
			{
				tenants.GET("", tc.GetTenants)
				tenants.GET("/:id", tc.GetTenant)
				tenants.POST("", tc.CreateTenant)
				tenants.PATCH("/:id", tc.UpdateTenant)
				tenants.DELETE("/:id", tc.DeleteTenant)
			}

			catalog := authorized.Group("/services")
			{
				catalog.GET("", sc.GetServices)
				catalog.GET("/:id", sc.GetService)
				catalog.POST("", sc.CreateService)
				catalog.PUT("/:id", sc.UpdateService)
				catalog.DELETE("/:id", sc.DeleteService)
			}

			contracts := authorized.Group("/contracts")
			{
				contracts.GET("", cc.GetContracts)
				contracts.GET("/:id", cc.GetContract)
				contracts.POST("", cc.CreateContract)
				contracts.PATCH("/:id", cc.UpdateContract)
				contracts.DELETE("/:id", cc.DeleteContract)
				contracts.POST("/:id/activate", cc.ActivateContract)
				contracts.POST("/:id/terminate", cc.TerminateContract)
				contracts.POST("/expire", cc.ExpireContracts)
			}

			invoices := authorized.Group("/invoices")
			{
				invoices.GET("", ic.GetInvoices)
				invoices.GET("/:id", ic.GetInvoice)
				invoices.POST("", ic.CreateInvoice)
				invoices.POST("/:id/payment", ic.ApplyPayment)
			}

			pricing := authorized.Group("/pricing")
			{
				pricing.POST("/tiers/validate", pc.ValidateTiers)
				pricing.POST("/tiers/evaluate", pc.EvaluateTiers)
			}
		}
	}

	return r
}
