package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"
	"github.com/Fede-Barberis/Finance-Manager/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ContributionRepository cubre las lecturas del log de contribuciones.
// Las escrituras viven en ledger_tx.go, siempre dentro de una transacción.
type ContributionRepository struct {
	DB *gorm.DB
}

type contributionDB struct {
	GoalId    string    `gorm:"column:goal_id;type:varchar(26);primaryKey"`
	Sequence  int64     `gorm:"column:sequence_number;primaryKey;autoIncrement:false"`
	Amount    float64   `gorm:"column:amount;type:decimal(15,2);not null"`
	Date      time.Time `gorm:"column:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func toDomainContribution(cdb *contributionDB) (*goal.Contribution, error) {
	gid, err := pkg.ParseULID(cdb.GoalId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &goal.Contribution{
		GoalId:    gid,
		Sequence:  cdb.Sequence,
		Amount:    cdb.Amount,
		Date:      cdb.Date,
		CreatedAt: cdb.CreatedAt,
	}, nil
}

func toDBContribution(c *goal.Contribution) *contributionDB {
	return &contributionDB{
		GoalId:    c.GoalId.String(),
		Sequence:  c.Sequence,
		Amount:    c.Amount,
		Date:      c.Date,
		CreatedAt: c.CreatedAt,
	}
}

func (r *ContributionRepository) GetByGoalAndSequence(ctx context.Context, goalID ulid.ULID, seq int64) (*goal.Contribution, error) {
	var cdb contributionDB
	if err := r.DB.WithContext(ctx).Table("goal_contributions").
		Where("goal_id = ? AND sequence_number = ?", goalID.String(), seq).
		First(&cdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrContributionNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainContribution(&cdb)
}

func (r *ContributionRepository) ListByGoal(ctx context.Context, goalID ulid.ULID) ([]*goal.Contribution, error) {
	var rows []contributionDB
	if err := r.DB.WithContext(ctx).Table("goal_contributions").
		Where("goal_id = ?", goalID.String()).
		Order("sequence_number DESC").
		Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*goal.Contribution, 0, len(rows))
	for i := range rows {
		c, err := toDomainContribution(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
