package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mzorab57/camera-sotre-backend/internal/admin"
	"github.com/mzorab57/camera-sotre-backend/internal/auth"
	"github.com/mzorab57/camera-sotre-backend/internal/brands"
	"github.com/mzorab57/camera-sotre-backend/internal/categories"
	"github.com/mzorab57/camera-sotre-backend/internal/config"
	"github.com/mzorab57/camera-sotre-backend/internal/db"
	"github.com/mzorab57/camera-sotre-backend/internal/discounts"
	"github.com/mzorab57/camera-sotre-backend/internal/domain/user"
	"github.com/mzorab57/camera-sotre-backend/internal/images"
	"github.com/mzorab57/camera-sotre-backend/internal/pricing"
	"github.com/mzorab57/camera-sotre-backend/internal/products"
	"github.com/mzorab57/camera-sotre-backend/internal/specs"
	"github.com/mzorab57/camera-sotre-backend/internal/subcategories"
	"github.com/mzorab57/camera-sotre-backend/internal/tags"
	"github.com/mzorab57/camera-sotre-backend/internal/upload"
	"github.com/mzorab57/camera-sotre-backend/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	pool, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	// Repos
	userRepo := auth.NewUserRepo(pool)
	refreshRepo := auth.NewRefreshRepo(pool)
	catRepo := categories.NewRepo(pool)
	subRepo := subcategories.NewRepo(pool)
	prodRepo := products.NewRepo(pool)
	brandRepo := brands.NewRepo(pool)
	tagRepo := tags.NewRepo(pool)
	imageRepo := images.NewRepo(pool)
	specRepo := specs.NewRepo(pool)
	discRepo := discounts.NewRepo(pool)
	adminRepo := admin.NewRepo(pool)

	// Pricing engine on top of the discount store
	quotes := pricing.NewService(discRepo)

	saver := upload.NewSaver(cfg.UploadDir, cfg.UploadBaseURL)

	// Handlers
	authHandler := auth.NewHandler(auth.Dependencies{
		JWT:     jwtMgr,
		Users:   userRepo,
		Refresh: refreshRepo,
	})
	catHandler := categories.NewHandler(catRepo)
	subHandler := subcategories.NewHandler(subRepo)
	prodHandler := products.NewHandler(prodRepo, quotes, discRepo)
	brandHandler := brands.NewHandler(brandRepo)
	tagHandler := tags.NewHandler(tagRepo)
	imageHandler := images.NewHandler(imageRepo, saver)
	specHandler := specs.NewHandler(specRepo)
	discHandler := discounts.NewHandler(discRepo)
	pricingHandler := pricing.NewHandler(quotes, prodRepo)
	userHandler := users.NewHandler(userRepo)
	adminHandler := admin.NewHandler(adminRepo, discRepo)

	r := gin.Default()
	r.Static(cfg.UploadBaseURL, saver.Root())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Public catalog
	api.GET("/categories", catHandler.ListPublic)
	api.GET("/categories/:id", catHandler.GetPublic)
	api.GET("/subcategories", subHandler.ListPublic)
	api.GET("/subcategories/:id", subHandler.GetPublic)
	api.GET("/subcategories/:id/products", subHandler.WithProducts)
	api.GET("/products", prodHandler.ListPublic)
	api.GET("/products/:id", prodHandler.GetPublic)
	api.GET("/products/:id/images", imageHandler.ListForProduct)
	api.GET("/products/:id/specifications", specHandler.ListForProduct)
	api.GET("/brands", brandHandler.ListPublic)
	api.GET("/tags", tagHandler.ListPublic)
	api.GET("/discounts/active", discHandler.ListActive)
	api.GET("/pricing/calculate", pricingHandler.Calculate)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/me/password", authHandler.ChangePassword)

		// Staff area: catalog management is open to both roles.
		staff := protected.Group("/admin")
		staff.Use(auth.RequireRole(user.RoleAdmin, user.RoleEmployee))
		{
			staff.GET("/dashboard", adminHandler.Dashboard)

			staff.GET("/categories", catHandler.AdminList)
			staff.POST("/categories", catHandler.AdminCreate)
			staff.PATCH("/categories/:id", catHandler.AdminUpdate)
			staff.DELETE("/categories/:id", catHandler.AdminDelete)

			staff.GET("/subcategories", subHandler.AdminList)
			staff.POST("/subcategories", subHandler.AdminCreate)
			staff.PATCH("/subcategories/:id", subHandler.AdminUpdate)
			staff.DELETE("/subcategories/:id", subHandler.AdminDelete)

			staff.POST("/products", prodHandler.AdminCreate)
			staff.PATCH("/products/:id", prodHandler.AdminUpdate)
			staff.DELETE("/products/:id", prodHandler.AdminDelete)

			staff.POST("/products/:id/images", imageHandler.AdminCreate)
			staff.PATCH("/images/:id", imageHandler.AdminUpdate)
			staff.POST("/images/:id/primary", imageHandler.AdminSetPrimary)
			staff.DELETE("/images/:id", imageHandler.AdminDelete)

			staff.POST("/products/:id/specifications", specHandler.AdminCreate)
			staff.PATCH("/specifications/:id", specHandler.AdminUpdate)
			staff.DELETE("/specifications/:id", specHandler.AdminDelete)

			staff.GET("/brands", brandHandler.AdminList)
			staff.POST("/brands", brandHandler.AdminCreate)
			staff.PATCH("/brands/:id", brandHandler.AdminUpdate)
			staff.DELETE("/brands/:id", brandHandler.AdminDelete)

			staff.POST("/tags", tagHandler.AdminCreate)
			staff.PATCH("/tags/:id", tagHandler.AdminUpdate)
			staff.DELETE("/tags/:id", tagHandler.AdminDelete)
			staff.POST("/products/:id/tags", tagHandler.AdminAttach)
			staff.DELETE("/products/:id/tags/:tagId", tagHandler.AdminDetach)

			staff.GET("/discounts", discHandler.AdminList)
			staff.GET("/discounts/:id", discHandler.AdminGet)
			staff.POST("/discounts", discHandler.AdminCreate)
			staff.PATCH("/discounts/:id", discHandler.AdminUpdate)
			staff.DELETE("/discounts/:id", discHandler.AdminDelete)
		}

		// Account management stays admin-only.
		adminOnly := protected.Group("/admin/users")
		adminOnly.Use(auth.RequireRole(user.RoleAdmin))
		{
			adminOnly.GET("", userHandler.AdminList)
			adminOnly.GET("/:id", userHandler.AdminGet)
			adminOnly.POST("", userHandler.AdminCreate)
			adminOnly.PATCH("/:id", userHandler.AdminUpdate)
			adminOnly.DELETE("/:id", userHandler.AdminDelete)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
