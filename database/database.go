package database

import (
	"fmt"
	"os"
	"strconv"

	"nrxpay/logger"
	"nrxpay/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, pass, name, port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	DB = db
	logger.Log.Info("connected to database", zap.String("host", host), zap.String("db", name))

	autoMigrateEnv := os.Getenv("DB_AUTO_MIGRATE")
	autoMigrate, err := strconv.ParseBool(autoMigrateEnv)
	if err != nil {
		logger.Log.Warn("invalid value for DB_AUTO_MIGRATE", zap.String("value", autoMigrateEnv))
	}

	if autoMigrate {
		Migrate()
	}
}

func Migrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.UserPin{},
		&models.UserBalance{},
		&models.BalanceEntry{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.CryptoExchange{},
		&models.BankAccount{},
		&models.AccountApplication{},
		&models.Rate{},
		&models.BonusTask{},
		&models.UserTaskCompletion{},
		&models.RankingRow{},
		&models.GameRound{},
		&models.AuditLog{},
	); err != nil {
		logger.Log.Fatal("failed to auto-migrate database", zap.Error(err))
	}

	// At most one active rate per family. AutoMigrate cannot express a
	// partial index, so it is created directly.
	if err := DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_rate_per_family
		 ON rates (family) WHERE is_active AND deleted_at IS NULL`,
	).Error; err != nil {
		logger.Log.Fatal("failed to create active-rate index", zap.Error(err))
	}

	logger.Log.Info("auto migration completed")
}
