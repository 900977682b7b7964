package goal

import (
	"context"
	"strings"
	"time"

	domaincontracts "github.com/Fede-Barberis/Finance-Manager/internal/domain/contracts"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"
	"github.com/Fede-Barberis/Finance-Manager/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Service es la fachada del dominio de ahorros: valida las solicitudes,
// verifica la propiedad del recurso y delega en el repositorio o en el
// coordinador del ledger según corresponda.
type Service struct {
	Repository Repository
	LedgerRepo LedgerRepository
	Ledger     *Ledger
}

func NewService(repo Repository, ledgerRepo LedgerRepository, ledger *Ledger) *Service {
	return &Service{
		Repository: repo,
		LedgerRepo: ledgerRepo,
		Ledger:     ledger,
	}
}

func (s *Service) CreateGoal(ctx context.Context, request *domaincontracts.GoalCreateRequest) (*Goal, error) {
	if err := ValidateCreateGoal(request); err != nil {
		return nil, err
	}

	targetDate, err := pkg.ParseDate(request.TargetDate)
	if err != nil {
		return nil, appErrors.NewValidationError("fecha_meta", err.Error())
	}

	now := time.Now()
	entity := &Goal{
		Id:            pkg.GenerateULIDObject(),
		UserId:        request.UserId,
		Name:          strings.TrimSpace(request.Name),
		Description:   strings.TrimSpace(request.Description),
		TargetAmount:  request.Target,
		CurrentAmount: 0,
		Status:        StatusActive,
		StartedAt:     now,
		TargetDate:    targetDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) UpdateGoal(ctx context.Context, request *domaincontracts.GoalUpdateRequest) (*Goal, error) {
	if err := s.checkOwnership(ctx, request.Id, request.UserId); err != nil {
		return nil, err
	}

	patch, err := buildPatch(request)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, appErrors.NewValidationError("body", "no se proporcionaron datos para actualizar")
	}

	if err := s.Repository.UpdateFields(ctx, request.Id, patch); err != nil {
		return nil, err
	}

	return s.Repository.GetByID(ctx, request.Id)
}

func (s *Service) DeleteGoal(ctx context.Context, goalID, userID ulid.ULID) error {
	if err := s.checkOwnership(ctx, goalID, userID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, goalID)
}

func (s *Service) GetGoalByID(ctx context.Context, goalID, userID ulid.ULID) (*Goal, error) {
	goal, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}
	return goal, nil
}

func (s *Service) GetGoalsByUserID(ctx context.Context, userID ulid.ULID, filters *GoalFilters, pagination *pkg.PaginationParams) ([]*Goal, int64, error) {
	if filters != nil && filters.Status != nil && !filters.Status.IsValid() {
		return nil, 0, appErrors.NewValidationError("estado", "el estado debe ser \"active\" - \"completed\" - \"cancelled\"")
	}
	return s.Repository.GetByUserID(ctx, userID, filters, pagination)
}

// AddContribution aplica una contribución al ahorro a través del coordinador
// del ledger. La propiedad se verifica antes de abrir la transacción; el
// monto lo rechaza el coordinador antes de tocar el almacenamiento.
func (s *Service) AddContribution(ctx context.Context, goalID, userID ulid.ULID, amount float64) (*Contribution, error) {
	if err := s.checkOwnership(ctx, goalID, userID); err != nil {
		return nil, err
	}

	return s.Ledger.Apply(ctx, goalID, amount)
}

// RemoveContribution revierte la contribución (goalID, seq) y devuelve la
// instantánea eliminada para confirmación del llamador.
func (s *Service) RemoveContribution(ctx context.Context, goalID ulid.ULID, seq int64, userID ulid.ULID) (*Contribution, error) {
	if err := s.checkOwnership(ctx, goalID, userID); err != nil {
		return nil, err
	}

	return s.Ledger.Reverse(ctx, goalID, seq)
}

// ContributionList es la vista derivada del log: lista, cantidad y total.
// El total se calcula sumando los eventos, nunca leyendo monto_actual, para
// que ambos caminos puedan contrastarse entre sí.
type ContributionList struct {
	Contributions []*Contribution `json:"contributions"`
	Count         int             `json:"count"`
	Total         float64         `json:"total"`
}

func (s *Service) GetContributions(ctx context.Context, goalID, userID ulid.ULID) (*ContributionList, error) {
	if err := s.checkOwnership(ctx, goalID, userID); err != nil {
		return nil, err
	}

	contributions, err := s.LedgerRepo.ListByGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, c := range contributions {
		total += c.Amount
	}

	return &ContributionList{
		Contributions: contributions,
		Count:         len(contributions),
		Total:         total,
	}, nil
}

// checkOwnership distingue 404 (el ahorro no existe) de 403 (existe pero
// pertenece a otro usuario), como exige la superficie HTTP.
func (s *Service) checkOwnership(ctx context.Context, goalID, userID ulid.ULID) error {
	goal, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return err
	}
	if goal.UserId != userID {
		return appErrors.ErrResourceNotOwned
	}
	return nil
}

func ValidateCreateGoal(request *domaincontracts.GoalCreateRequest) error {
	if strings.TrimSpace(request.Name) == "" {
		return appErrors.NewValidationError("nombre", "es obligatorio")
	}
	if request.Target <= 0 {
		return appErrors.NewValidationError("monto_objetivo", "debe ser mayor a cero")
	}
	if request.TargetDate == "" {
		return appErrors.NewValidationError("fecha_meta", "es obligatoria")
	}
	if err := pkg.ValidateDate(request.TargetDate, false); err != nil {
		return appErrors.NewValidationError("fecha_meta", err.Error())
	}
	return nil
}

func buildPatch(request *domaincontracts.GoalUpdateRequest) (*GoalPatch, error) {
	patch := &GoalPatch{}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("nombre", "no puede estar vacío")
		}
		patch.Name = &name
	}

	if request.Description != nil {
		description := strings.TrimSpace(*request.Description)
		patch.Description = &description
	}

	if request.Target != nil {
		if *request.Target <= 0 {
			return nil, appErrors.NewValidationError("monto_objetivo", "debe ser mayor a cero")
		}
		patch.TargetAmount = request.Target
	}

	if request.Status != nil {
		status := GoalStatus(*request.Status)
		if !status.IsValid() {
			return nil, appErrors.NewValidationError("estado", "el estado debe ser \"active\" - \"completed\" - \"cancelled\"")
		}
		patch.Status = &status
	}

	if request.TargetDate != nil {
		if err := pkg.ValidateDate(*request.TargetDate, false); err != nil {
			return nil, appErrors.NewValidationError("fecha_meta", err.Error())
		}
		targetDate, err := pkg.ParseDate(*request.TargetDate)
		if err != nil {
			return nil, appErrors.NewValidationError("fecha_meta", err.Error())
		}
		patch.TargetDate = &targetDate
	}

	return patch, nil
}
