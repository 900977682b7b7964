package routes

import (
	"net/http"
	"strconv"

	"github.com/Fede-Barberis/Finance-Manager/internal/contracts"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"
	"github.com/Fede-Barberis/Finance-Manager/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddContribution(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var request contracts.ContributionCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	goalID, err := pkg.ParseULID(request.GoalID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("goal_id", "identificador inválido"))
		return
	}

	created, err := h.GoalService.AddContribution(c.Request.Context(), goalID, userID, request.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ContributionResponse{Contribution: created})
}

func (h *Handler) DeleteContribution(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := pkg.ParseULID(c.Param("goal_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("goal_id", "identificador inválido"))
		return
	}

	seq, err := strconv.ParseInt(c.Param("nro_contribution"), 10, 64)
	if err != nil || seq <= 0 {
		h.respondError(c, appErrors.NewValidationError("nro_contribution", "debe ser un entero positivo"))
		return
	}

	deleted, err := h.GoalService.RemoveContribution(c.Request.Context(), goalID, seq, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ContributionDeleteResponse{
		Message:             "Contribución eliminada correctamente",
		DeletedContribution: deleted,
	})
}

func (h *Handler) GetContributionsByGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := pkg.ParseULID(c.Param("goal_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("goal_id", "identificador inválido"))
		return
	}

	list, err := h.GoalService.GetContributions(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ContributionListResponse{
		Contributions: list.Contributions,
		Count:         list.Count,
		Total:         list.Total,
	})
}
