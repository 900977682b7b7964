package contracts

import (
	domainGoal "github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
)

type GoalCreateRequest struct {
	Name        string  `json:"nombre" binding:"required,max=100"`
	Description string  `json:"descripcion" binding:"omitempty,max=255"`
	Target      float64 `json:"monto_objetivo" binding:"required,gt=0"`
	TargetDate  string  `json:"fecha_meta" binding:"required"`
}

type GoalUpdateRequest struct {
	Name        *string  `json:"nombre"`
	Description *string  `json:"descripcion"`
	Target      *float64 `json:"monto_objetivo"`
	Status      *string  `json:"estado"`
	TargetDate  *string  `json:"fecha_meta"`
}

type ContributionCreateRequest struct {
	GoalID string  `json:"goal_id" binding:"required"`
	Amount float64 `json:"monto" binding:"required"`
}

type GoalResponse struct {
	Goal *domainGoal.Goal `json:"goal"`
}

type GoalListResponse struct {
	Goals []*domainGoal.Goal `json:"goals"`
	Count int                `json:"count"`
}

type ContributionResponse struct {
	Contribution *domainGoal.Contribution `json:"contribution"`
}

type ContributionDeleteResponse struct {
	Message             string                   `json:"message"`
	DeletedContribution *domainGoal.Contribution `json:"deletedContribution"`
}

type ContributionListResponse struct {
	Contributions []*domainGoal.Contribution `json:"contributions"`
	Count         int                        `json:"count"`
	Total         float64                    `json:"total"`
}
