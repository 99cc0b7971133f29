package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iamsurajx/new-seller-server/config"
	"github.com/iamsurajx/new-seller-server/controller"
	"github.com/iamsurajx/new-seller-server/media"
	"github.com/iamsurajx/new-seller-server/middleware"
	"github.com/iamsurajx/new-seller-server/repository"
	"github.com/iamsurajx/new-seller-server/routes"
	"github.com/iamsurajx/new-seller-server/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := config.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		sugar.Fatalw("mongodb connection failed", "error", err)
	}
	sugar.Info("MongoDB connected")

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		sugar.Fatalw("index creation failed", "error", err)
	}

	store, err := media.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		sugar.Fatalw("cloudinary configuration failed", "error", err)
	}

	redisClient := config.NewRedis(cfg.RedisAddr, sugar)

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	productSvc := service.NewProductService(productRepo, store, sugar)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)

	productCtrl := controller.NewProductController(productSvc, redisClient, sugar, cfg.UploadDir)
	authCtrl := controller.NewAuthController(authSvc)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Seller server is running</h1>"))
	})

	routes.UserRoute(router, authCtrl, middleware.RequireAuth(authSvc), middleware.RateLimiter(redisClient))
	routes.ProductRoute(router, productCtrl)

	sugar.Infow("listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
