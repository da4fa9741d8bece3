package controller

import (
	"errors"

	"mindmate-be/internal/pkg/serverutils"
	"mindmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWellnessController interface {
	RegisterRoutes(r fiber.Router)
	GetRecent(ctx *fiber.Ctx) error
}

type wellnessController struct {
	service service.IWearableService
}

func NewWellnessController(service service.IWearableService) IWellnessController {
	return &wellnessController{service: service}
}

func (c *wellnessController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/wellness/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/recent", c.GetRecent)
}

func (c *wellnessController) GetRecent(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	days := ctx.QueryInt("days", 7)
	if days < 1 || days > 30 {
		days = 7
	}

	snapshot, err := c.service.GetHistory(ctx.Context(), userId, days)
	if err != nil {
		if errors.Is(err, service.ErrWearableNotLinked) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, "failed to fetch wearable data"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent wellness", snapshot))
}
