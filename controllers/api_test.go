package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"taxmate-backend/controllers"
	"taxmate-backend/database"
	"taxmate-backend/extraction"
	"taxmate-backend/middlewares"
	"taxmate-backend/models"
	"taxmate-backend/routes"
)

func strp(s string) *string   { return &s }
func f64p(v float64) *float64 { return &v }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	mem := database.NewMemoryStore()
	database.Drafts = mem
	database.Profiles = mem
	require.NoError(t, mem.SaveProfile(models.Party{
		BizNo: strp("111-22-33333"),
		Name:  strp("우리가게"),
	}))

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeDraft(t *testing.T, resp *http.Response) models.InvoiceDraft {
	t.Helper()
	var d models.InvoiceDraft
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	return d
}

func TestDraftLifecycle(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/draft", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	draft := decodeDraft(t, resp)
	require.NotEmpty(t, draft.ID)
	require.Equal(t, "우리가게", *draft.Supplier.Name)
	// fresh manual draft starts with its defects already flagged
	require.NotEmpty(t, draft.Warnings)

	resp = doJSON(t, app, fiber.MethodPost, "/api/draft/"+draft.ID+"/items", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	draft = decodeDraft(t, resp)
	require.Len(t, draft.Items, 1)

	// editing quantity and price rederives the item amounts and the totals
	resp = doJSON(t, app, fiber.MethodPut,
		fmt.Sprintf("/api/draft/%s/items/%s", draft.ID, draft.Items[0].ID),
		fiber.Map{"name": "국내산 쌀 20kg", "qty": 10, "unitPrice": 55000})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	draft = decodeDraft(t, resp)
	require.Equal(t, int64(550000), *draft.Items[0].SupplyAmount)
	require.Equal(t, int64(55000), *draft.Items[0].VatAmount)
	require.Equal(t, int64(605000), draft.TotalAmount)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/draft/"+draft.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/draft/"+draft.ID, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateDraftRevalidates(t *testing.T) {
	app := newTestApp(t)

	draft := decodeDraft(t, doJSON(t, app, fiber.MethodPost, "/api/draft", nil))
	draft.Buyer = models.Party{BizNo: strp("124-86-12345"), Name: strp("대박식자재유통")}
	draft.TotalAmount = 99999

	resp := doJSON(t, app, fiber.MethodPut, "/api/draft/"+draft.ID, draft)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeDraft(t, resp)

	codes := make([]string, 0, len(updated.Warnings))
	for _, w := range updated.Warnings {
		codes = append(codes, w.Code)
	}
	require.Equal(t, []string{models.WarnTotalMismatch, models.WarnNoItems}, codes)
}

type stubExtractor struct {
	payload *extraction.Payload
	err     error
}

func (s stubExtractor) Extract(ctx context.Context, image []byte, mimeType string) (*extraction.Payload, error) {
	return s.payload, s.err
}

func uploadRequest(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("document", "거래명세표.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-a-real-image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadCreatesValidatedDraft(t *testing.T) {
	app := newTestApp(t)
	controllers.Extractor = stubExtractor{payload: &extraction.Payload{
		IssueDate: strp("2026-08-31"),
		Buyer:     &extraction.PartyPayload{Name: strp("대박식자재유통")},
		Items: []extraction.ItemPayload{
			{Name: strp("쌀"), Qty: f64p(10), UnitPrice: f64p(55000), SupplyAmount: f64p(550000), VatAmount: f64p(55000)},
		},
		TotalSupplyAmount: f64p(550000),
		TotalVatAmount:    f64p(55000),
		TotalAmount:       f64p(605000),
	}}
	t.Cleanup(func() { controllers.Extractor = nil })

	resp, err := app.Test(uploadRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	draft := decodeDraft(t, resp)
	require.Equal(t, "거래명세표.jpg", draft.OriginalFileName)
	require.Equal(t, "우리가게", *draft.Supplier.Name) // profile, not payload
	require.Equal(t, int64(605000), draft.TotalAmount)

	codes := make([]string, 0, len(draft.Warnings))
	for _, w := range draft.Warnings {
		codes = append(codes, w.Code)
	}
	require.Equal(t, []string{models.WarnMissingBizNo}, codes)

	stored, err := database.Drafts.List()
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestUploadFailureLeavesNoPartialDraft(t *testing.T) {
	app := newTestApp(t)
	controllers.Extractor = stubExtractor{err: extraction.ErrExtraction}
	t.Cleanup(func() { controllers.Extractor = nil })

	resp, err := app.Test(uploadRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, extraction.ErrExtraction.Error(), body["message"])

	stored, err := database.Drafts.List()
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestUploadWithoutExtractorIsUnavailable(t *testing.T) {
	app := newTestApp(t)
	controllers.Extractor = nil

	resp, err := app.Test(uploadRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestExportDownloadsSpreadsheet(t *testing.T) {
	app := newTestApp(t)

	draft := decodeDraft(t, doJSON(t, app, fiber.MethodPost, "/api/draft", nil))
	draft.Buyer = models.Party{BizNo: strp("124-86-12345"), Name: strp("대박식자재유통")}
	doJSON(t, app, fiber.MethodPut, "/api/draft/"+draft.ID, draft)

	resp := doJSON(t, app, fiber.MethodPost, "/api/export", fiber.Map{"ids": []string{}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("엑셀업로드양식", "K7")
	require.NoError(t, err)
	require.Equal(t, "1248612345", v)
}

func TestExportWithNothingToExport(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/export", fiber.Map{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportCheckReportsTruncation(t *testing.T) {
	app := newTestApp(t)

	draft := decodeDraft(t, doJSON(t, app, fiber.MethodPost, "/api/draft", nil))
	for i := 0; i < 5; i++ {
		resp := doJSON(t, app, fiber.MethodPost, "/api/draft/"+draft.ID+"/items", nil)
		draft = decodeDraft(t, resp)
	}
	require.Len(t, draft.Items, 5)

	resp := doJSON(t, app, fiber.MethodPost, "/api/export/check", fiber.Map{"ids": []string{draft.ID}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count    int              `json:"count"`
		Warnings []models.Warning `json:"warnings"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Count)
	require.Len(t, body.Warnings, 1)
	require.Equal(t, models.WarnItemsTruncated, body.Warnings[0].Code)
}

func TestProfileUpdateValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPut, "/api/profile", fiber.Map{"email": "not-an-email"})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/profile", fiber.Map{
		"email":   "me@shop.kr",
		"ceoName": "  김사장  ",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var p models.Party
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	require.Equal(t, "me@shop.kr", *p.Email)
	require.Equal(t, "김사장", *p.CeoName) // trimmed
	require.Equal(t, "우리가게", *p.Name)   // untouched fields survive
}

func TestKnownBuyersDeduplicated(t *testing.T) {
	app := newTestApp(t)

	for i, buyer := range []models.Party{
		{BizNo: strp("124-86-12345"), Name: strp("대박식자재유통")},
		{BizNo: strp("124-86-12345"), Name: strp("대박식자재유통(주)")}, // same regNo
		{Name: strp("경동청과")},
	} {
		draft := decodeDraft(t, doJSON(t, app, fiber.MethodPost, "/api/draft", nil))
		draft.Buyer = buyer
		resp := doJSON(t, app, fiber.MethodPut, "/api/draft/"+draft.ID, draft)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "draft %d", i)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/buyers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Buyers []models.Party `json:"buyers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Buyers, 2)
}
