package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Julie983186/DynamicPricing/config"
	"github.com/Julie983186/DynamicPricing/database"
	"github.com/Julie983186/DynamicPricing/handlers"
	"github.com/Julie983186/DynamicPricing/metrics"
	"github.com/Julie983186/DynamicPricing/middleware"
	"github.com/Julie983186/DynamicPricing/pricing"
	"github.com/Julie983186/DynamicPricing/repositories"
	"github.com/Julie983186/DynamicPricing/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	// 加载配置
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 容器环境里用环境变量覆盖数据库连线
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUser == "" || dbPass == "" || dbHost == "" {
		dbUser = cfg.Database.User
		dbPass = cfg.Database.Password
		dbHost = cfg.Database.Host
		dbPort = cfg.Database.Port
		dbName = cfg.Database.Dbname
	}

	// 初始化数据库
	db, err := database.InitDB(dbHost, dbPort, dbUser, dbPass, dbName, cfg.Database.SslMode)
	if err != nil {
		panic(err)
	}

	// 营运地区时区，所有有效期计算都归一到这里
	loc, err := time.LoadLocation(cfg.Model.Timezone)
	if err != nil {
		panic(fmt.Errorf("时区配置错误: %v", err))
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		panic(err)
	}

	// 载入冻结模型（文件缺失会降级为随机兜底，日志里有标记）
	model := pricing.LoadModel(cfg.Model.ArtifactPath)
	provider := pricing.FixedContextProvider{Ctx: pricing.DefaultContext()}
	pipeline, err := pricing.NewPipeline(model, provider, loc, cfg.Model.Tolerance)
	if err != nil {
		// 模型声明了造不出来的特征列，属于致命配置错误
		panic(err)
	}

	// 初始化 Repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)

	// OCR 客户端
	ocrClient := services.NewPaddleOCRClient(cfg.OCR.Endpoint, time.Duration(cfg.OCR.TimeoutSec)*time.Second)

	hub := services.NewHub()
	go hub.Run()

	// 估价结果写回出口 + 重新估价引擎
	sink := services.RepoSink{Repo: productRepo}
	scheduler := services.NewRepricingScheduler(productRepo, pipeline, sink, hub,
		time.Duration(cfg.Scheduler.IntervalMin)*time.Minute)
	if cfg.Scheduler.Enabled {
		scheduler.Start(context.Background())
	}

	// 初始化 Handlers (注入 Repo)
	authHandler := handlers.NewAuthHandler(userRepo, cfg.Auth)
	userHandler := handlers.NewUserHandler(userRepo)
	scanHandler := handlers.NewScanHandler(productRepo, historyRepo, ocrClient, scheduler, cfg.Server.UploadDir, loc)
	productHandler := handlers.NewProductHandler(productRepo, loc)
	historyHandler := handlers.NewHistoryHandler(historyRepo, services.NewExportService(historyRepo))
	pricingHandler := handlers.NewPricingHandler(productRepo, pipeline, sink)

	// 注册路由
	r := gin.Default()
	r.Use(metrics.Middleware())
	r.Static("/uploads", cfg.Server.UploadDir)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.Auth.JWTSecret)

	// 会员
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/user/:id", auth, userHandler.GetUser)
	r.PUT("/user/:id", auth, userHandler.UpdateUser)

	// 扫描与商品
	r.POST("/ocr", optionalAuth, scanHandler.Scan)
	r.PUT("/product/:id", productHandler.UpdateProduct)

	// 扫描历史
	r.GET("/get_products/:user_id", historyHandler.GetProducts)
	r.GET("/history/:user_id/export", auth, historyHandler.ExportHistory)
	r.DELETE("/history/:id", optionalAuth, historyHandler.DeleteHistory)

	// AI 估价
	r.GET("/predict_price_check", pricingHandler.PredictPriceCheck)
	r.POST("/predict", pricingHandler.Predict)

	// WebSocket 价格推送
	r.GET("/ws", func(c *gin.Context) {
		handlers.ServeWs(hub, c)
	})

	_ = r.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}
