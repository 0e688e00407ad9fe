package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/checkout"
	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/cookiesandbiscadm-arch/yumyum/promo"
	"github.com/cookiesandbiscadm-arch/yumyum/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.PromoCode{},
		&models.GuestSession{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Redis backs cart snapshots and the catalog cache mirror. Without it
	// everything still works, just memory-only.
	var cartStorage cart.Storage = cart.NewMemoryStorage()
	var mirror gateway.CacheMirror
	if client := initRedis(); client != nil {
		cartStorage = cart.NewRedisStorage(client)
		mirror = gateway.NewRedisMirror(client, gateway.CacheTTL)
	}

	gw := gateway.New(db, mirror)
	carts := cart.NewManager(cartStorage)
	promos := promo.NewManager(gw)
	checkouts := checkout.NewManager(carts, promos, gw)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:        db,
		Gateway:   gw,
		Carts:     carts,
		Promos:    promos,
		Checkouts: checkouts,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("❌ DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}

// initRedis connects to Redis, or returns nil when it is unreachable.
func initRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, running with in-memory cart storage")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v), running with in-memory cart storage", err)
		return nil
	}

	log.Println("✅ Redis connected")
	return client
}
