package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerTxManager implementa goal.TxManager sobre las transacciones de gorm.
// Cada unidad atómica bloquea la fila del ahorro (SELECT ... FOR UPDATE)
// hasta el commit: dos transacciones concurrentes sobre el mismo ahorro se
// serializan y el cálculo de max(sequence)+1 nunca se duplica.
type LedgerTxManager struct {
	DB *gorm.DB
}

func (m *LedgerTxManager) InTx(ctx context.Context, fn func(tx goal.LedgerTx) error) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{tx: tx})
	})
}

type ledgerTx struct {
	tx *gorm.DB
}

func (t *ledgerTx) LockGoal(goalID ulid.ULID) (*goal.Goal, error) {
	var gdb goalDB
	if err := t.tx.Table("goals").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", goalID.String()).
		First(&gdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoal(&gdb)
}

// NextSequence lee max(sequence_number)+1 bajo el lock del ahorro. Los números
// nunca se reutilizan porque el máximo solo baja si se borra la última
// contribución, y aun así la asignación siguiente parte del máximo vigente
// dentro de la misma disciplina de serialización.
func (t *ledgerTx) NextSequence(goalID ulid.ULID) (int64, error) {
	var maxSeq int64
	if err := t.tx.Table("goal_contributions").
		Where("goal_id = ?", goalID.String()).
		Select("COALESCE(MAX(sequence_number), 0)").
		Scan(&maxSeq).Error; err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return maxSeq + 1, nil
}

func (t *ledgerTx) InsertContribution(c *goal.Contribution) error {
	cdb := toDBContribution(c)
	if err := t.tx.Table("goal_contributions").Create(&cdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (t *ledgerTx) FindContribution(goalID ulid.ULID, seq int64) (*goal.Contribution, error) {
	var cdb contributionDB
	if err := t.tx.Table("goal_contributions").
		Where("goal_id = ? AND sequence_number = ?", goalID.String(), seq).
		First(&cdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrContributionNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainContribution(&cdb)
}

func (t *ledgerTx) DeleteContribution(goalID ulid.ULID, seq int64) error {
	result := t.tx.Table("goal_contributions").
		Where("goal_id = ? AND sequence_number = ?", goalID.String(), seq).
		Delete(&contributionDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrContributionNotFound
	}
	return nil
}

func (t *ledgerTx) AddToCurrentAmount(goalID ulid.ULID, delta float64) error {
	result := t.tx.Table("goals").
		Where("id = ?", goalID.String()).
		UpdateColumn("current_amount", gorm.Expr("current_amount + ?", delta)).
		UpdateColumn("updated_at", time.Now())
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrGoalNotFound
	}
	return nil
}
