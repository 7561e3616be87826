package controller

import (
	"github.com/Aditya0026/collaborative-editor/internal/dto"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/serverutils"
	"github.com/Aditya0026/collaborative-editor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEditController interface {
	RegisterRoutes(r fiber.Router)
	GetSelection(ctx *fiber.Ctx) error
	UpdateSelection(ctx *fiber.Ctx) error
	RequestEdit(ctx *fiber.Ctx) error
	GetPreview(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type editController struct {
	editorService service.IEditorService
}

func NewEditController(editorService service.IEditorService) IEditController {
	return &editController{
		editorService: editorService,
	}
}

func (c *editController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/edit/v1/:sessionId")
	h.Get("selection", c.GetSelection)
	h.Put("selection", c.UpdateSelection)
	h.Post("request", c.RequestEdit)
	h.Get("preview", c.GetPreview)
	h.Post("confirm", c.Confirm)
	h.Post("cancel", c.Cancel)
}

func (c *editController) GetSelection(ctx *fiber.Ctx) error {
	res, err := c.editorService.GetSelectionState(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get selection", res))
}

func (c *editController) UpdateSelection(ctx *fiber.Ctx) error {
	var req dto.UpdateSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.editorService.UpdateSelection(ctx.Context(), ctx.Params("sessionId"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update selection", res))
}

func (c *editController) RequestEdit(ctx *fiber.Ctx) error {
	var req dto.RequestEditRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.editorService.RequestEdit(ctx.Context(), ctx.Params("sessionId"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success request edit", res))
}

func (c *editController) GetPreview(ctx *fiber.Ctx) error {
	res, err := c.editorService.GetPreview(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get preview", res))
}

func (c *editController) Confirm(ctx *fiber.Ctx) error {
	res, err := c.editorService.ConfirmSuggestion(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success confirm suggestion", res))
}

func (c *editController) Cancel(ctx *fiber.Ctx) error {
	res, err := c.editorService.CancelSuggestion(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel suggestion", res))
}
