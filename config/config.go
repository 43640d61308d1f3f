package config

import (
	"log"

	"restaurant-api/models"

	"github.com/caarlos0/env/v11"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs auth tokens; populated by Load.
var JWTSecret []byte

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	DatabaseDSN string `env:"DATABASE_DSN"` // postgres DSN; empty means local sqlite
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"restaurant.db"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"restaurant_api_dev_secret"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	JWTSecret = []byte(cfg.JWTSecret)
	return cfg, nil
}

// InitDB opens the database, runs migrations and seeds the role groups.
// Postgres is used when a DSN is configured, sqlite otherwise.
func InitDB(cfg Config) {
	var (
		dialector gorm.Dialector
		err       error
	)
	if cfg.DatabaseDSN != "" {
		dialector = postgres.Open(cfg.DatabaseDSN)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate runs schema migration and seeds the two role groups. Exposed
// separately so tests can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Booking{},
	)
	if err != nil {
		return err
	}

	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		if err := db.FirstOrCreate(&models.Group{}, models.Group{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
