package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-board-api/internal/dto"
	"goal-board-api/internal/response"
	"goal-board-api/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment godoc
// @Summary      Comment on a goal
// @Description  Adds a comment to a live goal on a board the caller can write to
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "Comment creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Goal not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List a goal's comments
// @Tags         comments
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid goal ID"
// @Failure      404 {object} response.ErrorResponse "Goal not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /comments/goal/{goalId} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByGoal(c.Request.Context(), actorID, goalID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Description  Edits a comment. Only the comment's author may edit it, regardless of board role.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Param        request body dto.UpdateCommentRequest true "Comment update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Caller is not the author"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), actorID, commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment. Only the comment's author may delete it.
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Invalid comment ID"
// @Failure      403 {object} response.ErrorResponse "Caller is not the author"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), actorID, commentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
