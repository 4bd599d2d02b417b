// Package letters renders template legal correspondence for a case.
package letters

import (
	"strings"
	"text/template"
	"time"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

const letterDateFormat = "02 January 2006"

// letterData carries preformatted fields into the letter templates.
type letterData struct {
	Today            string
	Reference        string
	DebtorName       string
	PropertyAddress  string
	DebtAmount       string
	CostsToDate      string
	TotalDue         string
	LBA1SentDate     string
	MortgageeName    string
	MortgageeAddress string
}

var templates = map[model.DocumentKind]*template.Template{
	model.DocumentLBA1:             template.Must(template.New("lba1").Parse(lba1Template)),
	model.DocumentLBA2:             template.Must(template.New("lba2").Parse(lba2Template)),
	model.DocumentMortgageeLetter1: template.Must(template.New("mortgagee1").Parse(mortgageeLetter1Template)),
}

// Render produces the letter of the given kind for a case snapshot. It does
// not mutate the case and does not require the case to be in any particular
// stage; regenerating an earlier letter after the case has moved on is
// allowed. Unknown kinds fail with INVALID_DOCUMENT_TYPE.
func Render(c *model.Case, kind model.DocumentKind, now time.Time) (string, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", apperrors.InvalidDocumentType(string(kind))
	}

	data := letterData{
		Today:            now.Format(letterDateFormat),
		Reference:        c.Reference,
		DebtorName:       c.DebtorName,
		PropertyAddress:  c.PropertyAddress,
		DebtAmount:       c.DebtAmount.StringFixed(2),
		LBA1SentDate:     "[DATE]",
		MortgageeName:    "[MORTGAGEE NAME]",
		MortgageeAddress: "[MORTGAGEE ADDRESS]",
	}

	if c.LBA1SentDate != nil {
		data.LBA1SentDate = c.LBA1SentDate.Format(letterDateFormat)
	}
	if c.MortgageeName != nil {
		data.MortgageeName = *c.MortgageeName
	}
	if c.MortgageeAddress != nil {
		data.MortgageeAddress = *c.MortgageeAddress
	}

	// LBA totals use the fixed stage surcharges; the mortgagee letter uses
	// the case's live running total.
	switch kind {
	case model.DocumentLBA1:
		data.TotalDue = c.DebtAmount.Add(lba1Costs).StringFixed(2)
	case model.DocumentLBA2:
		data.TotalDue = c.DebtAmount.Add(lba1Costs).Add(lba2Costs).StringFixed(2)
	case model.DocumentMortgageeLetter1:
		data.CostsToDate = c.TotalCosts.StringFixed(2)
		data.TotalDue = c.DebtAmount.Add(c.TotalCosts).StringFixed(2)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternalError, "failed to render letter")
	}
	return sb.String(), nil
}
