package fx

import (
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/auth"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	"github.com/Fede-Barberis/Finance-Manager/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule provee los services del dominio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newAuthService,
		newGoalLedger,
		newGoalService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newAuthService(repo *infrastructure.UserRepository, userSvc *user.Service) *auth.Service {
	return auth.NewService(repo, userSvc)
}

func newGoalLedger(txManager *infrastructure.LedgerTxManager) *goal.Ledger {
	return goal.NewLedger(txManager)
}

func newGoalService(
	repo *infrastructure.GoalRepository,
	ledgerRepo *infrastructure.ContributionRepository,
	ledger *goal.Ledger,
) *goal.Service {
	return goal.NewService(repo, ledgerRepo, ledger)
}
