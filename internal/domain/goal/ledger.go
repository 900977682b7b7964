package goal

import (
	"context"
	"time"

	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"

	"github.com/oklog/ulid/v2"
)

// LedgerTx es el conjunto de operaciones de almacenamiento disponibles dentro
// de una transacción acotada a un ahorro. La implementación debe garantizar
// que LockGoal retenga la fila del ahorro hasta el commit, de modo que dos
// transacciones concurrentes sobre el mismo ahorro se serialicen y nunca
// calculen el mismo número de secuencia.
type LedgerTx interface {
	LockGoal(goalID ulid.ULID) (*Goal, error)
	NextSequence(goalID ulid.ULID) (int64, error)
	InsertContribution(c *Contribution) error
	FindContribution(goalID ulid.ULID, seq int64) (*Contribution, error)
	DeleteContribution(goalID ulid.ULID, seq int64) error
	AddToCurrentAmount(goalID ulid.ULID, delta float64) error
}

// TxManager ejecuta fn dentro de una única unidad atómica: si fn devuelve
// error la transacción se revierte completa y ningún efecto parcial queda
// visible para otros lectores.
type TxManager interface {
	InTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// Ledger es el coordinador transaccional del log de contribuciones: aplica o
// revierte una contribución manteniendo consistentes el evento y el agregado.
// No reintenta: un fallo de commit se devuelve al llamador como
// TRANSACTION_FAILED.
type Ledger struct {
	Tx TxManager
}

func NewLedger(tx TxManager) *Ledger {
	return &Ledger{Tx: tx}
}

// Apply inserta una contribución con el siguiente número de secuencia del
// ahorro e incrementa su monto actual, todo en una transacción.
func (l *Ledger) Apply(ctx context.Context, goalID ulid.ULID, amount float64) (*Contribution, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("monto", "el monto debe ser mayor a cero")
	}

	var created *Contribution
	err := l.Tx.InTx(ctx, func(tx LedgerTx) error {
		if _, err := tx.LockGoal(goalID); err != nil {
			return err
		}

		seq, err := tx.NextSequence(goalID)
		if err != nil {
			return err
		}

		now := time.Now()
		contribution := &Contribution{
			GoalId:    goalID,
			Sequence:  seq,
			Amount:    amount,
			Date:      now,
			CreatedAt: now,
		}

		if err := tx.InsertContribution(contribution); err != nil {
			return err
		}

		if err := tx.AddToCurrentAmount(goalID, amount); err != nil {
			return err
		}

		created = contribution
		return nil
	})
	if err != nil {
		return nil, asLedgerError(err)
	}

	return created, nil
}

// Reverse elimina la contribución (goalID, seq) y descuenta su monto del
// ahorro en una transacción. Devuelve la instantánea del evento eliminado.
func (l *Ledger) Reverse(ctx context.Context, goalID ulid.ULID, seq int64) (*Contribution, error) {
	var deleted *Contribution
	err := l.Tx.InTx(ctx, func(tx LedgerTx) error {
		if _, err := tx.LockGoal(goalID); err != nil {
			return err
		}

		contribution, err := tx.FindContribution(goalID, seq)
		if err != nil {
			return err
		}

		if err := tx.AddToCurrentAmount(goalID, -contribution.Amount); err != nil {
			return err
		}

		if err := tx.DeleteContribution(goalID, seq); err != nil {
			return err
		}

		deleted = contribution
		return nil
	})
	if err != nil {
		return nil, asLedgerError(err)
	}

	return deleted, nil
}

// Los errores de dominio (not found, validación) atraviesan la transacción
// tal cual; cualquier otro fallo es un commit que no pudo completarse.
func asLedgerError(err error) error {
	if appErr, ok := appErrors.AsAppError(err); ok {
		return appErr
	}
	return appErrors.NewTransactionError(err)
}
