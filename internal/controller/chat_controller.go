package controller

import (
	"ragchat-be/internal/dto"
	"ragchat-be/internal/pkg/serverutils"
	"ragchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService       service.IChatService
	suggestionService service.ISuggestionService
}

func NewChatController(
	chatService service.IChatService,
	suggestionService service.ISuggestionService,
) IChatController {
	return &chatController{
		chatService:       chatService,
		suggestionService: suggestionService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.SendChat)
	h.Post("/suggest", c.Suggest)
	h.Get("/:threadId/history", c.GetHistory)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Suggest(ctx *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.suggestionService.Suggest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate suggestions", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	threadId := ctx.Params("threadId")

	res, err := c.chatService.GetHistory(ctx.Context(), threadId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}
