package goal

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Contribution es un evento monetario inmutable aplicado a un ahorro.
// La clave es (goal_id, sequence_number): el número de secuencia crece
// estrictamente dentro de cada ahorro y nunca se reutiliza, aunque la
// contribución que lo llevaba haya sido eliminada.
type Contribution struct {
	GoalId    ulid.ULID `gorm:"type:varchar(26);primaryKey;autoIncrement:false" json:"goal_id"`
	Sequence  int64     `gorm:"column:sequence_number;primaryKey;autoIncrement:false" json:"nro_contribution"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"monto"`
	Date      time.Time `gorm:"type:timestamp;not null" json:"fecha"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
}

func (Contribution) TableName() string {
	return "goal_contributions"
}
