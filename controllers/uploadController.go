package controllers

import (
	"io"
	"net/http"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"taxmate-backend/database"
	"taxmate-backend/extraction"
	"taxmate-backend/utils"
)

// Extractor is wired in main. Nil means no API key was configured.
var Extractor extraction.Extractor

// One outstanding extraction request per process; a second upload while one
// is pending gets 429 instead of racing the first.
var uploadBusy atomic.Bool

// ProcessUpload runs the document-capture flow: image in, validated draft
// out. A hard extraction failure surfaces one user-facing message and
// leaves no partial draft behind.
func ProcessUpload(c *fiber.Ctx) error {
	if Extractor == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "AI 기능이 설정되지 않았습니다.")
	}
	if !uploadBusy.CompareAndSwap(false, true) {
		return fiber.NewError(fiber.StatusTooManyRequests, "이미 문서를 분석하는 중입니다. 잠시만 기다려 주세요.")
	}
	defer uploadBusy.Store(false)

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "문서 이미지를 첨부해 주세요.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "문서 이미지를 읽을 수 없습니다.")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "문서 이미지를 읽을 수 없습니다.")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	payload, err := Extractor.Extract(c.Context(), image, mimeType)
	if err != nil {
		return err // ErrExtraction, mapped by the central handler
	}

	profile, err := database.Profiles.Profile()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
			"error":   err.Error(),
		})
	}

	draft := extraction.Normalize(payload, profile, fileHeader.Filename)
	draft = utils.ValidateDraft(draft)

	if err := database.Drafts.Put(draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save draft",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}
