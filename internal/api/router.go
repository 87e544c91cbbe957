package api

import (
	"context"
	"time"

	"home-assistant/internal/api/handlers"
	"home-assistant/internal/api/handlers/health"
	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/ai/cache"
	aiservice "home-assistant/internal/core/ai/service"
	"home-assistant/internal/core/assistant"
	"home-assistant/internal/core/calorie"
	"home-assistant/internal/core/chat"
	"home-assistant/internal/core/family"
	"home-assistant/internal/core/image"
	"home-assistant/internal/core/inventory"
	"home-assistant/internal/core/recipe"
	"home-assistant/internal/core/session"
	"home-assistant/internal/core/shopping"
	"home-assistant/internal/infrastructure/config"
	"home-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由並組裝所有服務
func SetupRouter(cfg *config.Config, manager *session.Manager, aiCache cache.Cache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與重複請求過濾
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// 初始化服務
	store := manager.Store()
	imageSvc := image.NewService(cfg.Image.MaxSizeBytes, cfg.Image.DownloadDir)
	aiSvc := aiservice.NewService(cfg, aiCache, imageSvc)
	aiAssistant := assistant.New(aiSvc, imageSvc)

	inventorySvc := inventory.NewService(store)
	recipeSvc := recipe.NewService(store, aiAssistant)
	shoppingSvc := shopping.NewService(store, aiAssistant)
	familySvc := family.NewService(store)
	calorieSvc := calorie.NewService(store)
	chatSvc := chat.NewService(store, aiAssistant)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", aiCache != nil),
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("store_backend", cfg.Store.Backend),
	)

	// 公開路由
	router.GET("/health", health.HealthCheck(cfg.App.Version))
	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.HandleLogin(manager))
		auth.POST("/register", handlers.HandleRegister(manager))
		auth.POST("/logout", handlers.HandleLogout(manager))
	}

	// 工作階段保護的路由
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(manager))
	{
		inv := v1.Group("/inventory")
		{
			inv.POST("", handlers.HandleAddLot(inventorySvc))
			inv.GET("", handlers.HandleListLots(inventorySvc))
			inv.GET("/expiring", handlers.HandleExpiringLots(inventorySvc))
			inv.PUT("/:id", handlers.HandleUpdateLot(inventorySvc))
			inv.POST("/:id/adjust", handlers.HandleAdjustQuantity(inventorySvc))
			inv.DELETE("/:id", handlers.HandleDeleteLot(inventorySvc))
		}

		rec := v1.Group("/recipe")
		{
			rec.GET("/daily", handlers.HandleDailyRecipe(recipeSvc))
			rec.GET("/daily/reconcile", handlers.HandleReconcileRecipe(recipeSvc))
			rec.POST("/daily/export", handlers.HandleExportRecipeNeeds(recipeSvc))
			rec.POST("/daily/cook", handlers.HandleCookRecipe(recipeSvc))
		}

		shop := v1.Group("/shopping")
		{
			shop.POST("", handlers.HandleAddShoppingItem(shoppingSvc))
			shop.GET("", handlers.HandleListShopping(shoppingSvc))
			shop.PUT("/:id", handlers.HandleUpdateShoppingItem(shoppingSvc))
			shop.PUT("/:id/check", handlers.HandleCheckShoppingItem(shoppingSvc))
			shop.DELETE("/:id", handlers.HandleDeleteShoppingItem(shoppingSvc))
			shop.DELETE("/checked", handlers.HandleDeleteCheckedShopping(shoppingSvc))
			shop.DELETE("", handlers.HandleClearShopping(shoppingSvc))
			shop.POST("/promote", handlers.HandlePromoteShopping(shoppingSvc))
		}

		fam := v1.Group("/family")
		{
			fam.POST("", handlers.HandleAddFamilyMember(familySvc))
			fam.GET("", handlers.HandleListFamily(familySvc))
			fam.PUT("/:id", handlers.HandleUpdateFamilyMember(familySvc))
			fam.DELETE("/:id", handlers.HandleDeleteFamilyMember(familySvc))
		}

		cal := v1.Group("/calories")
		{
			cal.POST("", handlers.HandleAddCalorieRecord(calorieSvc))
			cal.GET("", handlers.HandleListCalorieRecords(calorieSvc))
			cal.GET("/daily", handlers.HandleDailyCalories(calorieSvc))
			cal.GET("/weekly", handlers.HandleWeeklyCalories(calorieSvc))
			cal.DELETE("/:id", handlers.HandleDeleteCalorieRecord(calorieSvc))
		}

		ch := v1.Group("/chat")
		{
			ch.POST("", handlers.HandleChat(chatSvc))
			ch.GET("/history", handlers.HandleChatHistory(chatSvc))
			ch.GET("/dates", handlers.HandleChatDates(chatSvc))
			ch.DELETE("/history", handlers.HandleClearChat(chatSvc))
		}

		ast := v1.Group("/assistant")
		{
			ast.POST("/recognize", handlers.HandleRecognizeFood(aiAssistant, inventorySvc))
			ast.POST("/calories", handlers.HandleEstimateCalories(aiAssistant))
			ast.POST("/category", handlers.HandleEstimateCategory(aiAssistant))
			ast.GET("/suggest", handlers.HandleSuggest(aiAssistant))
			ast.GET("/restaurant", handlers.HandleRecommendRestaurant(aiAssistant))
		}

		v1.GET("/settings/:key", handlers.HandleGetSetting())
		v1.PUT("/settings/:key", handlers.HandleSetSetting())
		v1.GET("/equipment", handlers.HandleGetEquipment())
		v1.PUT("/equipment", handlers.HandleUpdateEquipment())
	}

	common.LogInfo("Router setup complete")
	return router, nil
}
