package goal

import (
	"context"
	"time"

	"github.com/Fede-Barberis/Finance-Manager/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type GoalFilters struct {
	Status *GoalStatus
	Name   *string
}

// GoalPatch describe una actualización parcial: solo los campos no nulos
// se escriben en la fila. CurrentAmount queda fuera a propósito, esa columna
// pertenece al ledger.
type GoalPatch struct {
	Name         *string
	Description  *string
	TargetAmount *float64
	Status       *GoalStatus
	TargetDate   *time.Time
}

func (p *GoalPatch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == nil && p.Description == nil && p.TargetAmount == nil &&
		p.Status == nil && p.TargetDate == nil
}

type Repository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id ulid.ULID) (*Goal, error)
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Goal, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, filters *GoalFilters, pagination *pkg.PaginationParams) ([]*Goal, int64, error)
	UpdateFields(ctx context.Context, id ulid.ULID, patch *GoalPatch) error
	Delete(ctx context.Context, id ulid.ULID) error
	CheckGoalBelongsToUser(ctx context.Context, goalID, userID ulid.ULID) (bool, error)
}

// LedgerRepository expone las lecturas del log de contribuciones.
// Las escrituras (insertar, borrar, asignar secuencia) solo existen dentro
// de una transacción del coordinador: ver LedgerTx en ledger.go.
type LedgerRepository interface {
	GetByGoalAndSequence(ctx context.Context, goalID ulid.ULID, seq int64) (*Contribution, error)
	ListByGoal(ctx context.Context, goalID ulid.ULID) ([]*Contribution, error)
}
