package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
)

// CatalogHandler políticas, categorías y reglas de garantía.
type CatalogHandler struct {
	policies   *usecase.PolicyUseCase
	categories *usecase.CategoryUseCase
	warranty   *usecase.WarrantyUseCase
}

func NewCatalogHandler(p *usecase.PolicyUseCase, c *usecase.CategoryUseCase, w *usecase.WarrantyUseCase) *CatalogHandler {
	return &CatalogHandler{policies: p, categories: c, warranty: w}
}

// ── Políticas ────────────────────────────────────────────────────────────────

// ListPolicies GET /api/policies. Los no-admin solo ven las publicadas.
func (h *CatalogHandler) ListPolicies(c *fiber.Ctx) error {
	out, err := h.policies.List(c.UserContext(), Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPolicy GET /api/policies/:id
func (h *CatalogHandler) GetPolicy(c *fiber.Ctx) error {
	out, err := h.policies.Get(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePolicy POST /api/policies
func (h *CatalogHandler) CreatePolicy(c *fiber.Ctx) error {
	var in dto.UpsertPolicyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.policies.Upsert(c.UserContext(), "", in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpsertPolicy PUT /api/policies/:id. La versión sube solo si cambia el contenido.
func (h *CatalogHandler) UpsertPolicy(c *fiber.Ctx) error {
	var in dto.UpsertPolicyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.policies.Upsert(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PublishPolicy PATCH /api/policies/:id/publish
func (h *CatalogHandler) PublishPolicy(c *fiber.Ctx) error {
	var in dto.PublishPolicyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.policies.Publish(c.UserContext(), c.Params("id"), *in.Published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePolicy DELETE /api/policies/:id
func (h *CatalogHandler) DeletePolicy(c *fiber.Ctx) error {
	if err := h.policies.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Categorías ───────────────────────────────────────────────────────────────

// ListCategories GET /api/categories?active=true
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory POST /api/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory PUT /api/categories/:id
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.categories.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory DELETE /api/categories/:id
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Garantías ────────────────────────────────────────────────────────────────

// ListWarrantyRules GET /api/warranty-rules?category_id=
func (h *CatalogHandler) ListWarrantyRules(c *fiber.Ctx) error {
	out, err := h.warranty.List(c.UserContext(), c.Query("category_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateWarrantyRule POST /api/warranty-rules
func (h *CatalogHandler) CreateWarrantyRule(c *fiber.Ctx) error {
	var in dto.WarrantyRuleRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.warranty.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateWarrantyRule PUT /api/warranty-rules/:id
func (h *CatalogHandler) UpdateWarrantyRule(c *fiber.Ctx) error {
	var in dto.WarrantyRuleRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.warranty.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteWarrantyRule DELETE /api/warranty-rules/:id
func (h *CatalogHandler) DeleteWarrantyRule(c *fiber.Ctx) error {
	if err := h.warranty.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
