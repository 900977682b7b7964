package routes

import (
	"net/http"

	"github.com/Fede-Barberis/Finance-Manager/internal/contracts"
	domaincontracts "github.com/Fede-Barberis/Finance-Manager/internal/domain/contracts"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"
	"github.com/Fede-Barberis/Finance-Manager/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var request contracts.GoalCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	created, err := h.GoalService.CreateGoal(c.Request.Context(), &domaincontracts.GoalCreateRequest{
		UserId:      userID,
		Name:        request.Name,
		Description: request.Description,
		Target:      request.Target,
		TargetDate:  request.TargetDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.GoalResponse{Goal: created})
}

func (h *Handler) GetGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "identificador inválido"))
		return
	}

	entity, err := h.GoalService.GetGoalByID(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalResponse{Goal: entity})
}

func (h *Handler) ListGoals(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	goals, total, err := h.GoalService.GetGoalsByUserID(c.Request.Context(), userID, nil, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(goals, pagination.Page, pagination.Limit, total))
}

func (h *Handler) FilterGoalsByName(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	name := c.Query("nombre")
	if name == "" {
		h.respondError(c, appErrors.NewValidationError("nombre", "es obligatorio"))
		return
	}

	filters := &goal.GoalFilters{Name: &name}
	goals, total, err := h.GoalService.GetGoalsByUserID(c.Request.Context(), userID, filters, nil)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalListResponse{Goals: goals, Count: int(total)})
}

func (h *Handler) FilterGoalsByState(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	state := c.Query("estado")
	if state == "" {
		h.respondError(c, appErrors.NewValidationError("estado", "es obligatorio"))
		return
	}

	status := goal.GoalStatus(state)
	filters := &goal.GoalFilters{Status: &status}
	goals, total, err := h.GoalService.GetGoalsByUserID(c.Request.Context(), userID, filters, nil)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalListResponse{Goals: goals, Count: int(total)})
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "identificador inválido"))
		return
	}

	var request contracts.GoalUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	updated, err := h.GoalService.UpdateGoal(c.Request.Context(), &domaincontracts.GoalUpdateRequest{
		Id:          goalID,
		UserId:      userID,
		Name:        request.Name,
		Description: request.Description,
		Target:      request.Target,
		Status:      request.Status,
		TargetDate:  request.TargetDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalResponse{Goal: updated})
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "identificador inválido"))
		return
	}

	if err := h.GoalService.DeleteGoal(c.Request.Context(), goalID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Ahorro eliminado correctamente"})
}
