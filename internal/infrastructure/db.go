package infrastructure

import (
	"github.com/Fede-Barberis/Finance-Manager/config"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	"github.com/Fede-Barberis/Finance-Manager/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Error().
			Err(err).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Fallo al conectar con la base de datos")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Fallo al obtener la instancia de la base de datos")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Msg("Conexión con la base de datos establecida")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("Ejecutando migrations...")

	entities := []interface{}{
		&user.User{},
		&goal.Goal{},
		&goal.Contribution{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", getEntityName(entity)).
				Msg("Error al migrar la entidad")
			return err
		}
	}

	logger.Info().Msg("Migrations ejecutadas correctamente")
	return nil
}

func getEntityName(entity interface{}) string {
	switch entity.(type) {
	case *user.User:
		return "User"
	case *goal.Goal:
		return "Goal"
	case *goal.Contribution:
		return "GoalContribution"
	default:
		return "Unknown"
	}
}
