package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-core/internal/application/category"
	"github.com/jhoicas/inventario-core/internal/application/dto"
)

// CategoryHandler maneja las peticiones HTTP para categorías (protegido).
type CategoryHandler struct {
	uc   *category.UseCase
	errs ErrorWriter
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *category.UseCase, errs ErrorWriter) *CategoryHandler {
	return &CategoryHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar categorías en orden jerárquico
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), Tenant(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Parents godoc
// @Summary      Categorías raíz disponibles como padre
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        exclude  query  string  false  "ID de la categoría en edición"
// @Success      200  {object}  dto.ParentCandidatesResponse
// @Router       /api/categories/parents [get]
func (h *CategoryHandler) Parents(c *fiber.Ctx) error {
	out, err := h.uc.ParentCandidates(c.UserContext(), Tenant(c), c.Query("exclude"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header  string  true  "Token anti-CSRF"
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateBody(c, &in); done {
		return err
	}
	res, err := h.uc.Create(c.UserContext(), Tenant(c), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{ID: res.ID, Message: res.Message})
}

// Update godoc
// @Summary      Editar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header  string  true  "Token anti-CSRF"
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateBody(c, &in); done {
		return err
	}
	res, err := h.uc.Edit(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(dto.MutationResponse{ID: res.ID, Message: res.Message})
}

// Delete godoc
// @Summary      Eliminar categoría sin productos ni subcategorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        X-CSRF-Token  header  string  true  "Token anti-CSRF"
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	res, err := h.uc.Delete(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(dto.MutationResponse{ID: res.ID, Message: res.Message})
}
