package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/config"
	"github.com/sahilchouksey/studyshare-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
		TranslateError:         true, // unique / foreign key violations become gorm sentinel errors
	})
	if err != nil {
		log.Errorf("Unable to connect to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Successfully connected to PostgreSQL Database with GORM.")

	return NewGORMStore(db), nil
}

// NewGORMStore wraps an already opened GORM connection
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Info("Running GORM AutoMigrate for catalog models...")

	err := s.db.AutoMigrate(
		// Catalog hierarchy, parents first
		&model.University{},
		&model.Faculty{},
		&model.Subject{},
		&model.Note{},
	)

	if err != nil {
		log.Errorf("Error running AutoMigrate: %v", err)
		return err
	}

	log.Info("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Info("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CountCatalog counts rows in every catalog table
func (s *GORMStore) CountCatalog(ctx context.Context) (CatalogCounts, error) {
	var counts CatalogCounts
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.University{}).Count(&counts.Universities).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Faculty{}).Count(&counts.Faculties).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Subject{}).Count(&counts.Subjects).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Note{}).Count(&counts.Notes).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// translateError maps GORM errors onto the storage sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrParentNotFound
	}
	return err
}
