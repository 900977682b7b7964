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

type GoalRepository struct {
	DB *gorm.DB
}

type goalDB struct {
	Id            string  `gorm:"type:varchar(26);primaryKey"`
	UserId        string  `gorm:"type:varchar(26);index;not null"`
	Name          string  `gorm:"not null"`
	Description   string
	TargetAmount  float64 `gorm:"not null"`
	CurrentAmount float64 `gorm:"not null"`
	Status        goal.GoalStatus `gorm:"not null"`
	StartedAt     time.Time
	TargetDate    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toDomainGoal(gdb *goalDB) (*goal.Goal, error) {
	id, err := pkg.ParseULID(gdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(gdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &goal.Goal{
		Id:            id,
		UserId:        uid,
		Name:          gdb.Name,
		Description:   gdb.Description,
		TargetAmount:  gdb.TargetAmount,
		CurrentAmount: gdb.CurrentAmount,
		Status:        gdb.Status,
		StartedAt:     gdb.StartedAt,
		TargetDate:    gdb.TargetDate,
		CreatedAt:     gdb.CreatedAt,
		UpdatedAt:     gdb.UpdatedAt,
	}, nil
}

func toDBGoal(g *goal.Goal) *goalDB {
	return &goalDB{
		Id:            g.Id.String(),
		UserId:        g.UserId.String(),
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Status:        g.Status,
		StartedAt:     g.StartedAt,
		TargetDate:    g.TargetDate,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	gdb := toDBGoal(g)
	if err := r.DB.WithContext(ctx).Table("goals").Create(&gdb).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Delete elimina el ahorro y su log de contribuciones en la misma
// transacción: una contribución nunca sobrevive a su agregado.
func (r *GoalRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("goals").Where("id = ?", id.String()).Delete(&goalDB{})
		if result.Error != nil {
			return appErrors.NewDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrGoalNotFound
		}
		if err := tx.Table("goal_contributions").
			Where("goal_id = ?", id.String()).
			Delete(&contributionDB{}).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	})
}

func (r *GoalRepository) GetByID(ctx context.Context, id ulid.ULID) (*goal.Goal, error) {
	var gdb goalDB
	if err := r.DB.WithContext(ctx).Table("goals").Where("id = ?", id.String()).First(&gdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoal(&gdb)
}

func (r *GoalRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*goal.Goal, error) {
	var gdb goalDB
	if err := r.DB.WithContext(ctx).Table("goals").Where("id = ? AND user_id = ?", id.String(), userID.String()).First(&gdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoal(&gdb)
}

func (r *GoalRepository) GetByUserID(ctx context.Context, userID ulid.ULID, filters *goal.GoalFilters, pagination *pkg.PaginationParams) ([]*goal.Goal, int64, error) {
	pagination = pkg.NormalizePagination(pagination)

	baseQuery := r.DB.WithContext(ctx).Table("goals").Where("user_id = ?", userID.String())
	if filters != nil {
		if filters.Status != nil {
			baseQuery = baseQuery.Where("status = ?", *filters.Status)
		}
		if filters.Name != nil {
			baseQuery = baseQuery.Where("name LIKE ?", "%"+*filters.Name+"%")
		}
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}

	var rows []goalDB
	if err := baseQuery.Order("started_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}

	out := make([]*goal.Goal, 0, len(rows))
	for i := range rows {
		g, err := toDomainGoal(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, nil
}

// UpdateFields aplica una actualización parcial: solo los campos presentes en
// el patch tocan la fila. current_amount nunca pasa por acá.
func (r *GoalRepository) UpdateFields(ctx context.Context, id ulid.ULID, patch *goal.GoalPatch) error {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.TargetAmount != nil {
		fields["target_amount"] = *patch.TargetAmount
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.TargetDate != nil {
		fields["target_date"] = *patch.TargetDate
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := r.DB.WithContext(ctx).Table("goals").Where("id = ?", id.String()).Updates(fields)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) CheckGoalBelongsToUser(ctx context.Context, goalID, userID ulid.ULID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Table("goals").Where("id = ? AND user_id = ?", goalID.String(), userID.String()).Count(&count).Error; err != nil {
		return false, appErrors.NewDatabaseError(err)
	}
	return count > 0, nil
}
