package controllers

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"taxmate-backend/database"
	"taxmate-backend/hometax"
	"taxmate-backend/models"
)

type ExportRequest struct {
	IDs []string `json:"ids"` // empty selects every stored draft
}

func selectDrafts(ids []string) ([]models.InvoiceDraft, error) {
	if len(ids) == 0 {
		return database.Drafts.List()
	}
	drafts := make([]models.InvoiceDraft, 0, len(ids))
	for _, id := range ids {
		d, err := database.Drafts.Get(id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "draft not found: "+id)
			}
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// ExportHomeTax streams the bulk-upload spreadsheet for the selected
// drafts. Truncation warnings do not block the download; the UI asks for
// them up front via ExportCheck.
func ExportHomeTax(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	drafts, err := selectDrafts(req.IDs)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "내보낼 세금계산서가 없습니다.")
	}

	data, _, err := hometax.Generate(drafts)
	if err != nil {
		return err // ErrExport, mapped by the central handler
	}

	fileName := hometax.FileName(len(drafts), time.Now())
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(fileName))
	return c.Send(data)
}

// ExportCheck reports what an export of the selection would warn about,
// without producing the file.
func ExportCheck(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	drafts, err := selectDrafts(req.IDs)
	if err != nil {
		return err
	}

	warnings := []models.Warning{}
	warnings = append(warnings, hometax.CheckTruncation(drafts)...)

	return c.JSON(fiber.Map{
		"count":    len(drafts),
		"warnings": warnings,
	})
}
