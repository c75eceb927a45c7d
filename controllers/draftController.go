package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taxmate-backend/database"
	"taxmate-backend/middlewares"
	"taxmate-backend/models"
	"taxmate-backend/utils"
)

// CreateDraft starts a manual (non-AI) draft from the empty template.
func CreateDraft(c *fiber.Ctx) error {
	profile, err := database.Profiles.Profile()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
			"error":   err.Error(),
		})
	}

	draft := utils.ValidateDraft(models.EmptyDraft(uuid.NewString(), profile))

	if err := database.Drafts.Put(draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create draft",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func GetDrafts(c *fiber.Ctx) error {
	drafts, err := database.Drafts.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list drafts",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"drafts":  drafts,
		"message": "success",
	})
}

func GetDraft(c *fiber.Ctx) error {
	draft, err := database.Drafts.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "draft not found")
		}
		return err
	}
	return c.JSON(draft)
}

// UpdateDraft is the whole-draft save used by the editor. The body is the
// full draft; it is re-validated before persisting so warnings are always
// current, and the id in the path wins over the one in the body.
func UpdateDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := database.Drafts.Get(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "draft not found")
		}
		return err
	}

	var draft models.InvoiceDraft
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	draft.ID = id
	if draft.BillingType != models.BillingReceipt {
		draft.BillingType = models.BillingCharge
	}

	draft = utils.ValidateDraft(draft)

	if err := database.Drafts.Put(draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update draft",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

// DeleteDraft is permanent and immediate; there is no soft delete.
func DeleteDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := database.Drafts.Get(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "draft not found")
		}
		return err
	}
	if err := database.Drafts.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete draft",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// ItemDTO carries a partial line-item edit; nil fields stay as they are.
type ItemDTO struct {
	Name      *string  `json:"name" validate:"omitempty,max=100"`
	Spec      *string  `json:"spec" validate:"omitempty,max=100"`
	Qty       *float64 `json:"qty"`
	UnitPrice *int64   `json:"unitPrice"`
}

// AddItem appends a fresh line item, the editor's "품목 추가" action.
func AddItem(c *fiber.Ctx) error {
	draft, err := database.Drafts.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "draft not found")
		}
		return err
	}

	name, spec := "", ""
	qty := 1.0
	var price, supply, vat int64
	item := models.LineItem{
		ID:           uuid.NewString(),
		Name:         &name,
		Spec:         &spec,
		Qty:          &qty,
		UnitPrice:    &price,
		SupplyAmount: &supply,
		VatAmount:    &vat,
	}
	draft.Items = append(draft.Items, item)

	utils.ApplyTotals(&draft)
	draft = utils.ValidateDraft(draft)

	if err := database.Drafts.Put(draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

// UpdateItem edits one line item. When quantity or unit price change the
// item's derived amounts are recomputed, then the draft totals, then the
// warnings; name/spec edits leave extraction-supplied amounts untouched.
func UpdateItem(c *fiber.Ctx) error {
	draft, err := database.Drafts.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "draft not found")
		}
		return err
	}

	var dto ItemDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	itemID := c.Params("itemId")
	idx := -1
	for i := range draft.Items {
		if draft.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}

	item := &draft.Items[idx]
	if dto.Name != nil {
		item.Name = dto.Name
	}
	if dto.Spec != nil {
		item.Spec = dto.Spec
	}
	if dto.Qty != nil {
		item.Qty = dto.Qty
	}
	if dto.UnitPrice != nil {
		item.UnitPrice = dto.UnitPrice
	}
	if dto.Qty != nil || dto.UnitPrice != nil {
		utils.RecalculateItem(item)
	}

	utils.ApplyTotals(&draft)
	draft = utils.ValidateDraft(draft)

	if err := database.Drafts.Put(draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update item",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func RemoveItem(c *fiber.Ctx) error {
	draft, err := database.Drafts.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "draft not found")
		}
		return err
	}

	itemID := c.Params("itemId")
	kept := make([]models.LineItem, 0, len(draft.Items))
	found := false
	for _, item := range draft.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	draft.Items = kept

	utils.ApplyTotals(&draft)
	draft = utils.ValidateDraft(draft)

	if err := database.Drafts.Put(draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}
