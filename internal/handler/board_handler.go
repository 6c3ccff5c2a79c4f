package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-board-api/internal/dto"
	"goal-board-api/internal/response"
	"goal-board-api/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard godoc
// @Summary      Create a board
// @Description  Creates a board with the caller as its owner
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBoardRequest true "Board creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoard godoc
// @Summary      Get a board
// @Description  Returns a board the caller participates in, with its roster
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	board, err := h.boardService.Get(c.Request.Context(), actorID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// ListBoards godoc
// @Summary      List the caller's boards
// @Description  Returns every live board the caller participates in
// @Tags         boards
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse}
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards [get]
func (h *BoardHandler) ListBoards(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.List(c.Request.Context(), actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}

// UpdateBoard godoc
// @Summary      Update a board
// @Description  Renames the board and/or replaces its roster. Owner only; the owner's row is never replaced.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.UpdateBoardRequest true "Board update request"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Caller is not the owner"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.ReplaceParticipants(c.Request.Context(), actorID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Delete a board
// @Description  Soft-deletes the board and cascades to its categories and goals. Owner only.
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      403 {object} response.ErrorResponse "Caller is not the owner"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), actorID, boardID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
