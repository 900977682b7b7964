package fx

import (
	"github.com/Fede-Barberis/Finance-Manager/config"
	"github.com/Fede-Barberis/Finance-Manager/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newGoalRepository,
		newContributionRepository,
		newLedgerTxManager,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newGoalRepository(db *gorm.DB) *infrastructure.GoalRepository {
	return &infrastructure.GoalRepository{DB: db}
}

func newContributionRepository(db *gorm.DB) *infrastructure.ContributionRepository {
	return &infrastructure.ContributionRepository{DB: db}
}

func newLedgerTxManager(db *gorm.DB) *infrastructure.LedgerTxManager {
	return &infrastructure.LedgerTxManager{DB: db}
}
