package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-board-api/internal/dto"
	"goal-board-api/internal/response"
	"goal-board-api/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory godoc
// @Summary      Create a goal category
// @Description  Creates a category on a board the caller can write to
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "Category creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, category)
}

// GetCategory godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /categories/{categoryId} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), actorID, categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// ListCategories godoc
// @Summary      List a board's categories
// @Description  Returns the live categories of a board the caller participates in
// @Tags         categories
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /categories/board/{boardId} [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	categories, err := h.categoryService.ListByBoard(c.Request.Context(), actorID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}

// UpdateCategory godoc
// @Summary      Rename a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.UpdateCategoryRequest true "Category update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /categories/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), actorID, categoryID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Soft-deletes the category and archives its goals
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      403 {object} response.ErrorResponse "Caller cannot write to the board"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /categories/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), actorID, categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
