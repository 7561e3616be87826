package controller

import (
	"github.com/Aditya0026/collaborative-editor/internal/pkg/serverutils"
	"github.com/Aditya0026/collaborative-editor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetDocument(ctx *fiber.Ctx) error
	Undo(ctx *fiber.Ctx) error
	Redo(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	editorService service.IEditorService
}

func NewSessionController(editorService service.IEditorService) ISessionController {
	return &sessionController{
		editorService: editorService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
	h.Get(":id/document", c.GetDocument)
	h.Post(":id/undo", c.Undo)
	h.Post(":id/redo", c.Redo)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.editorService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) GetDocument(ctx *fiber.Ctx) error {
	res, err := c.editorService.GetDocument(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get document", res))
}

func (c *sessionController) Undo(ctx *fiber.Ctx) error {
	res, err := c.editorService.Undo(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success undo", res))
}

func (c *sessionController) Redo(ctx *fiber.Ctx) error {
	res, err := c.editorService.Redo(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success redo", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.editorService.DeleteSession(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", fiber.Map{}))
}
