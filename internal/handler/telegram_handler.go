package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-board-api/internal/dto"
	"goal-board-api/internal/response"
	"goal-board-api/internal/service"
)

type TelegramHandler struct {
	telegramService service.TelegramService
}

func NewTelegramHandler(telegramService service.TelegramService) *TelegramHandler {
	return &TelegramHandler{
		telegramService: telegramService,
	}
}

// VerifyTelegram godoc
// @Summary      Link a Telegram chat
// @Description  Redeems a verification code issued by the bot, binding that chat to the caller's account. Codes are single use.
// @Tags         telegram
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyTelegramRequest true "Verification request"
// @Success      200 {object} response.SuccessResponse{data=dto.TelegramLinkResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid or already used code"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /telegram/verify [post]
func (h *TelegramHandler) VerifyTelegram(c *gin.Context) {
	actorID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyTelegramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	link, err := h.telegramService.RedeemCode(c.Request.Context(), actorID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, link)
}
