package goal

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
	StatusCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Goal es el agregado de ahorro: monto objetivo y monto actual acumulado.
// CurrentAmount solo lo mutan las operaciones del ledger; debe ser siempre
// igual a la suma de las contribuciones vivas del ahorro.
type Goal struct {
	Id            ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID  `gorm:"type:varchar(26);index:idx_goals_user_id;not null" json:"usuario_id"`
	Name          string     `gorm:"type:varchar(100);not null;index:idx_goals_user_name" json:"nombre"`
	Description   string     `gorm:"type:varchar(255)" json:"descripcion"`
	TargetAmount  float64    `gorm:"type:decimal(15,2);not null" json:"monto_objetivo"`
	CurrentAmount float64    `gorm:"type:decimal(15,2);not null;default:0" json:"monto_actual"`
	Status        GoalStatus `gorm:"type:varchar(20);default:'active';index:idx_goals_status" json:"estado"`
	StartedAt     time.Time  `gorm:"type:timestamp;not null" json:"fecha_inicio"`
	TargetDate    time.Time  `gorm:"type:timestamp;not null" json:"fecha_meta"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}
