package routes

import (
	"github.com/gofiber/fiber/v2"

	"taxmate-backend/controllers"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// My info (공급자 프로필)
	api.Get("/profile", controllers.GetProfile)
	api.Put("/profile", controllers.UpdateProfile)

	// Drafts
	api.Post("/draft", controllers.CreateDraft) // manual entry
	api.Get("/drafts", controllers.GetDrafts)
	api.Get("/draft/:id", controllers.GetDraft)
	api.Put("/draft/:id", controllers.UpdateDraft)
	api.Delete("/draft/:id", controllers.DeleteDraft)

	// Known counterparties (deduped across drafts)
	api.Get("/buyers", controllers.GetBuyers)

	// Line items (editor actions; re-validated on every change)
	api.Post("/draft/:id/items", controllers.AddItem)
	api.Put("/draft/:id/items/:itemId", controllers.UpdateItem)
	api.Delete("/draft/:id/items/:itemId", controllers.RemoveItem)

	// Document capture → extraction → draft
	api.Post("/upload", controllers.ProcessUpload)

	// HomeTax bulk-upload spreadsheet
	api.Post("/export", controllers.ExportHomeTax)
	api.Post("/export/check", controllers.ExportCheck)
}
