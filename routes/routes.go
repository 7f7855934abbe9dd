package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/wealth-sync/handlers"
	"github.com/LovationAdmin/wealth-sync/middleware"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/services"
)

type Options struct {
	JWTSecret      []byte
	TokenTTL       time.Duration
	AllowedOrigins []string
	Limiter        *middleware.RateLimiter
}

// NewRouter builds the reference API on top of backend.
func NewRouter(opts Options, backend *services.Backend, ws *handlers.WSHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(middleware.RequestLogger())
	if opts.Limiter != nil {
		router.Use(opts.Limiter.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, models.Envelope{
			Success: true,
			Message: "healthy",
			Data:    gin.H{"time": time.Now().UTC().Format(time.RFC3339)},
		})
	})

	api := router.Group("/api")
	SetupAuthRoutes(api, opts, backend)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.JWTSecret))
	{
		protected.POST("/auth/2fa/setup", authHandler(opts, backend).SetupTOTP)
		protected.POST("/auth/2fa/enable", authHandler(opts, backend).EnableTOTP)
		protected.GET("/ws", ws.HandleWS)
		SetupProfileRoutes(protected, backend, ws)
		SetupResourceRoutes(protected, backend, ws)
	}

	return router
}

func authHandler(opts Options, backend *services.Backend) *handlers.AuthHandler {
	return &handlers.AuthHandler{
		Accounts: backend.Accounts,
		Profiles: backend.Profiles,
		Secret:   opts.JWTSecret,
		TokenTTL: opts.TokenTTL,
	}
}

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, opts Options, backend *services.Backend) {
	h := authHandler(opts, backend)
	rg.POST("/auth/signup", h.Signup)
	rg.POST("/auth/login", h.Login)
}

func SetupProfileRoutes(rg *gin.RouterGroup, backend *services.Backend, ws *handlers.WSHandler) {
	h := &handlers.ProfileHandler{Profiles: backend.Profiles, WS: ws}
	rg.GET("/profile", h.GetProfile)
	rg.PATCH("/profile", h.UpdateProfile)
}

type crud interface {
	List(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func SetupResourceRoutes(rg *gin.RouterGroup, backend *services.Backend, ws *handlers.WSHandler) {
	mount(rg, "wallets", handlers.NewResourceHandler[models.Wallet, models.WalletInput, models.WalletPatch](
		"wallets", "Wallet", backend.Wallets, ws))
	mount(rg, "transactions", handlers.NewResourceHandler[models.Transaction, models.TransactionInput, models.TransactionPatch](
		"transactions", "Transaction", backend.Transactions, ws))
	mount(rg, "assets", handlers.NewResourceHandler[models.Asset, models.AssetInput, models.AssetPatch](
		"assets", "Asset", backend.Assets, ws))
	mount(rg, "debts", handlers.NewResourceHandler[models.Debt, models.DebtInput, models.DebtPatch](
		"debts", "Debt", backend.Debts, ws))
}

func mount(rg *gin.RouterGroup, name string, h crud) {
	rg.GET("/"+name, h.List)
	rg.POST("/"+name, h.Create)
	rg.PUT("/"+name+"/:id", h.Update)
	rg.DELETE("/"+name+"/:id", h.Delete)
}
