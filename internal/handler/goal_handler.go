package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-board-api/internal/dto"
	"goal-board-api/internal/response"
	"goal-board-api/internal/service"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal godoc
// @Summary      Create a goal
// @Description  Creates a goal in a category on a board the caller can write to. Status starts at to_do.
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateGoalRequest true "Goal creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, goal)
}

// GetGoal godoc
// @Summary      Get a goal
// @Description  Returns a live goal; archived goals read as not found
// @Tags         goals
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid goal ID"
// @Failure      404 {object} response.ErrorResponse "Goal not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /goals/{goalId} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	goal, err := h.goalService.Get(c.Request.Context(), actorID, goalID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, goal)
}

// ListGoals godoc
// @Summary      List a category's goals
// @Description  Returns the non-archived goals of a category
// @Tags         goals
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /goals/category/{categoryId} [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	goals, err := h.goalService.ListByCategory(c.Request.Context(), actorID, categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, goals)
}

// UpdateGoal godoc
// @Summary      Update a goal
// @Description  Updates a live goal's fields. Setting status to archived retires the goal.
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Param        request body dto.UpdateGoalRequest true "Goal update request"
// @Success      200 {object} response.SuccessResponse{data=dto.GoalResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Goal not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /goals/{goalId} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), actorID, goalID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, goal)
}

// DeleteGoal godoc
// @Summary      Delete a goal
// @Description  Archives the goal. Deleting an already archived goal is a no-op.
// @Tags         goals
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Invalid goal ID"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Goal not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /goals/{goalId} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), actorID, goalID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
