// Package hometax encodes invoice drafts into the HomeTax bulk-upload
// spreadsheet (전자세금계산서 일반/영세율, 100건 이하 양식).
package hometax

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"taxmate-backend/models"
	"taxmate-backend/utils"
)

// ErrExport is the single user-facing failure of the export boundary.
var ErrExport = errors.New("엑셀 파일을 만드는 중 오류가 발생했습니다. 다시 시도해 주세요.")

const sheetName = "엑셀업로드양식"

// The form carries at most 4 item slots; further items do not fit the
// 100-records-or-fewer template and are reported via a warning.
const maxExportItems = 4

// foreignRegNo replaces a 13-digit personal registration number in the
// buyer column; HomeTax rejects personal numbers there and expects the real
// number in the remarks column instead.
const foreignRegNo = "9999999999999"

// headerRow mirrors the official template labels, column for column.
var headerRow = []string{
	"전자(세금)계산서 종류\n(01:일반, 02:영세율)",
	"작성일자",
	"공급자 등록번호\n(\"-\" 없이 입력)",
	"공급자\n종사업장번호",
	"공급자 상호",
	"공급자 성명",
	"공급자 사업장주소",
	"공급자 업태",
	"공급자 종목",
	"공급자 이메일",
	"공급받는자 등록번호\n(\"-\" 없이 입력)",
	"공급받는자\n종사업장번호",
	"공급받는자 상호",
	"공급받는자 성명",
	"공급받는자 사업장주소",
	"공급받는자 업태",
	"공급받는자 종목",
	"공급받는자 이메일1",
	"공급받는자 이메일2",
	"공급가액\n합계",
	"세액\n합계",
	"비고",
	"일자1\n(2자리, 작성\n년월 제외)", "품목1", "규격1", "수량1", "단가1", "공급가액1", "세액1", "품목비고1",
	"일자2\n(2자리, 작성\n년월 제외)", "품목2", "규격2", "수량2", "단가2", "공급가액2", "세액2", "품목비고2",
	"일자3\n(2자리, 작성\n년월 제외)", "품목3", "규격3", "수량3", "단가3", "공급가액3", "세액3", "품목비고3",
	"일자4\n(2자리, 작성\n년월 제외)", "품목4", "규격4", "수량4", "단가4", "공급가액4", "세액4", "품목비고4",
	"현금", "수표", "어음", "외상미수금",
	"영수(01),\n청구(02)",
}

var titleRows = []string{
	"엑셀 업로드 양식(전자세금계산서-일반(영세율)) - 100건 이하",
	"○ 필수항목(주황색)은 반드시 입력하셔야 합니다.",
	"○ 7행부터 데이터를 입력하세요.",
	"",
	"",
}

// Generate renders drafts into the template: 5 instruction rows, 1 header
// row, then one data row per draft starting at row 7. Every cell is written
// as a text-typed cell so the spreadsheet host cannot auto-convert
// registration numbers or dates into numbers, which HomeTax rejects.
// Drafts with more than 4 items get an ITEMS_TRUNCATED_FOR_EXPORT warning;
// the file is still produced with the first 4 items.
func Generate(drafts []models.InvoiceDraft) ([]byte, []models.Warning, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("hometax: rename sheet: %v", err)
		return nil, nil, ErrExport
	}

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49}) // "@" text format
	if err != nil {
		log.Printf("hometax: text style: %v", err)
		return nil, nil, ErrExport
	}

	for i, title := range titleRows {
		if err := f.SetCellStr(sheetName, fmt.Sprintf("A%d", i+1), title); err != nil {
			log.Printf("hometax: title row %d: %v", i+1, err)
			return nil, nil, ErrExport
		}
	}
	if err := writeRow(f, 6, headerRow); err != nil {
		return nil, nil, ErrExport
	}

	warnings := CheckTruncation(drafts)
	for i, draft := range drafts {
		if err := writeRow(f, 7+i, encodeDraft(draft)); err != nil {
			return nil, nil, ErrExport
		}
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(headerRow), 6+len(drafts))
	if err := f.SetCellStyle(sheetName, "A1", lastCell, textStyle); err != nil {
		log.Printf("hometax: apply text style: %v", err)
		return nil, nil, ErrExport
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("hometax: write workbook: %v", err)
		return nil, nil, ErrExport
	}
	return buf.Bytes(), warnings, nil
}

// CheckTruncation reports which drafts carry more items than the form's 4
// slots. Generate emits the same warnings; a pre-export check can call this
// directly without paying for workbook encoding.
func CheckTruncation(drafts []models.InvoiceDraft) []models.Warning {
	var warnings []models.Warning
	for _, draft := range drafts {
		if len(draft.Items) > maxExportItems {
			warnings = append(warnings, models.Warning{
				Code: models.WarnItemsTruncated,
				Message: fmt.Sprintf("홈택스 양식은 품목을 최대 %d개까지만 담을 수 있어 %d개 품목 중 앞의 %d개만 내보냅니다.",
					maxExportItems, len(draft.Items), maxExportItems),
				FieldPath: fmt.Sprintf("items[%d]", maxExportItems),
			})
		}
	}
	return warnings
}

// FileName returns the mandated download name, e.g.
// 홈택스_업로드용_3건_20260831.xlsx.
func FileName(count int, now time.Time) string {
	return fmt.Sprintf("홈택스_업로드용_%d건_%s.xlsx", count, now.Format("20060102"))
}

func writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			log.Printf("hometax: cell name (%d,%d): %v", col+1, row, err)
			return err
		}
		if err := f.SetCellStr(sheetName, cell, v); err != nil {
			log.Printf("hometax: set cell %s: %v", cell, err)
			return err
		}
	}
	return nil
}

// encodeDraft lays one draft out in the template's column order.
func encodeDraft(draft models.InvoiceDraft) []string {
	supplierRegNo := utils.DigitsOnly(strOrEmpty(draft.Supplier.BizNo))
	buyerRegNo := utils.DigitsOnly(strOrEmpty(draft.Buyer.BizNo))

	var dateClean string
	if draft.IssueDate != nil {
		dateClean = utils.DigitsOnly(*draft.IssueDate) // YYYYMMDD
	}

	// Thirteen digits mean a personal (resident/foreigner) registration
	// number: the column gets the fixed sentinel and the real number moves
	// to remarks so the transaction stays traceable.
	remarks := ""
	if len(buyerRegNo) == 13 {
		remarks = buyerRegNo
		buyerRegNo = foreignRegNo
	}

	day := ""
	if draft.IssueDate != nil && len(*draft.IssueDate) == 10 {
		day = (*draft.IssueDate)[8:10]
	}

	row := []string{
		"01", // 종류: 일반
		dateClean,
		supplierRegNo,
		"", // 공급자 종사업장번호
		strOrEmpty(draft.Supplier.Name),
		strOrEmpty(draft.Supplier.CeoName),
		strOrEmpty(draft.Supplier.Address),
		"", // 업태
		"", // 종목
		strOrEmpty(draft.Supplier.Email),
		buyerRegNo,
		"", // 공급받는자 종사업장번호
		strOrEmpty(draft.Buyer.Name),
		strOrEmpty(draft.Buyer.CeoName),
		strOrEmpty(draft.Buyer.Address),
		"", // 업태
		"", // 종목
		strOrEmpty(draft.Buyer.Email),
		"", // 이메일2
		strconv.FormatInt(draft.TotalSupplyAmount, 10),
		strconv.FormatInt(draft.TotalVatAmount, 10),
		remarks,
	}

	for i := 0; i < maxExportItems; i++ {
		if i < len(draft.Items) {
			item := draft.Items[i]
			row = append(row,
				day,
				strOrEmpty(item.Name),
				strOrEmpty(item.Spec),
				qtyString(item.Qty),
				wonString(item.UnitPrice),
				wonString(item.SupplyAmount),
				wonString(item.VatAmount),
				"", // 품목비고
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "")
		}
	}

	// 현금 / 수표 / 어음 / 외상미수금
	row = append(row, "", "", "", "")

	if draft.BillingType == models.BillingReceipt {
		row = append(row, "01")
	} else {
		row = append(row, "02")
	}
	return row
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func wonString(v *int64) string {
	if v == nil {
		return "0"
	}
	return strconv.FormatInt(*v, 10)
}

func qtyString(v *float64) string {
	if v == nil {
		return "0"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
