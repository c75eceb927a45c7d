package controllers

import (
	"github.com/gofiber/fiber/v2"

	"taxmate-backend/database"
	"taxmate-backend/models"
)

// GetBuyers lists the distinct counterparties seen across all drafts,
// newest first, for the editor's "known buyer" suggestions. Deduplication
// is by registration number when present, else by name.
func GetBuyers(c *fiber.Ctx) error {
	drafts, err := database.Drafts.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list drafts",
			"error":   err.Error(),
		})
	}

	buyers := []models.Party{}
	for _, d := range drafts {
		b := d.Buyer
		if (b.Name == nil || *b.Name == "") && (b.BizNo == nil || *b.BizNo == "") {
			continue
		}
		known := false
		for _, existing := range buyers {
			if models.SameParty(existing, b) {
				known = true
				break
			}
		}
		if !known {
			buyers = append(buyers, b)
		}
	}

	return c.JSON(fiber.Map{
		"buyers":  buyers,
		"message": "success",
	})
}
