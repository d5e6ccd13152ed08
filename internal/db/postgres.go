package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/akarwowski/lingocards-backend/internal/pkg/envutil"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.Get("POSTGRES_HOST", "localhost")
	postgresPort := envutil.Get("POSTGRES_PORT", "5432")
	postgresUser := envutil.Get("POSTGRES_USER", "postgres")
	postgresPassword := envutil.Get("POSTGRES_PASSWORD", "")
	postgresName := envutil.Get("POSTGRES_NAME", "lingocards")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Flashcard{},
		&types.ProgressRecord{},
		&types.UserEvent{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
