package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/internal/handlers"
	"github.com/naveensh16/sweet-shop-management/internal/middlewares"
	"github.com/naveensh16/sweet-shop-management/internal/repository"
	"github.com/naveensh16/sweet-shop-management/internal/service"
	"github.com/naveensh16/sweet-shop-management/logger"
	"github.com/naveensh16/sweet-shop-management/pkg/config"
	"github.com/naveensh16/sweet-shop-management/pkg/db"
	"github.com/naveensh16/sweet-shop-management/pkg/mq"
	"github.com/naveensh16/sweet-shop-management/pkg/obs"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := obs.InitTracer("sweet-shop-api")
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	gdb, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}

	users := repository.NewUserRepo(gdb)
	sweets := repository.NewSweetRepo(gdb)
	if err := users.Migrate(); err != nil {
		log.Fatal(err)
	}
	if err := sweets.Migrate(); err != nil {
		log.Fatal(err)
	}

	var pub *mq.Publisher
	if cfg.AMQPURL != "" {
		pub, err = mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal(err)
		}
		defer pub.Close()
	}

	authSvc := service.NewAuthSvc(users, cfg.TokenTTL())
	sweetSvc := service.NewSweetSvc(sweets, pub)

	if err := authSvc.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatal(err)
	}
	logger.Log.Info("[main] admin bootstrap ensured", "email", cfg.AdminEmail)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)

	ah := handlers.NewAuthHandler(authSvc)
	sh := handlers.NewSweetHandler(sweetSvc)

	api := r.Group("/api")
	{
		api.POST("/auth/register", ah.Register)
		api.POST("/auth/login", ah.Login)
		api.GET("/auth/me", middlewares.JWTAuth(), ah.Me)

		sw := api.Group("/sweets")
		sw.Use(middlewares.JWTAuth())
		{
			sw.GET("", sh.List)
			sw.GET("/search", sh.Search)
			sw.GET("/:id", sh.Get)
			sw.POST("/:id/purchase", sh.Purchase)

			admin := sw.Group("")
			admin.Use(middlewares.RequireRole(domain.RoleAdmin))
			admin.POST("", sh.Create)
			admin.PUT("/:id", sh.Update)
			admin.DELETE("/:id", sh.Delete)
			admin.POST("/:id/restock", sh.Restock)
		}
	}

	log.Println("sweet-shop api on", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
