package controllers

import (
	"github.com/gofiber/fiber/v2"

	"taxmate-backend/database"
	"taxmate-backend/middlewares"
	"taxmate-backend/utils"
)

// ProfileDTO is a partial update: nil fields leave the stored value alone.
type ProfileDTO struct {
	BizNo   *string `json:"bizNo" validate:"omitempty,max=20"`
	Name    *string `json:"name" validate:"omitempty,max=100"`
	CeoName *string `json:"ceoName" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

func GetProfile(c *fiber.Ctx) error {
	profile, err := database.Profiles.Profile()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(profile)
}

func UpdateProfile(c *fiber.Ctx) error {
	var dto ProfileDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	profile, err := database.Profiles.Profile()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
			"error":   err.Error(),
		})
	}

	utils.ApplyPtrDTO(&dto, &profile)

	if err := database.Profiles.SaveProfile(profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(profile)
}
