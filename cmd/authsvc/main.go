package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feliperosa-dev/storefront-api/auth"
	"github.com/feliperosa-dev/storefront-api/config"
	"github.com/feliperosa-dev/storefront-api/models"
	"github.com/feliperosa-dev/storefront-api/routes"
)

func main() {
	log.Println("✅ Starting auth service...")

	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	tokens := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupAuthRoutes(r, db, tokens)

	port := os.Getenv("AUTH_PORT")
	if port == "" {
		port = "8081"
	}
	log.Printf("🚀 Auth service running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// migrate creates the users table and seeds two demo accounts the first
// time the service starts against an empty database.
func migrate(db *gorm.DB) error {
	log.Println("🔄 Running auth migrations...")

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("ℹ️  %d user(s) already present, skipping seed", count)
		return nil
	}

	seeds := []struct {
		email string
		name  string
		role  models.Role
	}{
		{"seller@email.com", "Joao Seller", models.RoleSeller},
		{"customer@email.com", "Maria Customer", models.RoleCustomer},
	}

	for _, s := range seeds {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			ID:       uuid.NewString(),
			Email:    s.email,
			Name:     s.name,
			Role:     s.role,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded %s / password123 (%s)", s.email, s.role)
	}

	return nil
}
