package contracts

import (
	"github.com/oklog/ulid/v2"
)

// Las fechas viajan como string YYYY-MM-DD y las valida el servicio con el
// validador de fechas antes de tocar el almacenamiento.

type GoalCreateRequest struct {
	UserId      ulid.ULID
	Name        string
	Description string
	Target      float64
	TargetDate  string
}

type GoalUpdateRequest struct {
	Id     ulid.ULID
	UserId ulid.ULID

	// Solo los campos no nulos se aplican (actualización parcial).
	Name        *string
	Description *string
	Target      *float64
	Status      *string
	TargetDate  *string
}
