package letters

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

var renderTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testCase() *model.Case {
	return &model.Case{
		Reference:       "DC2026-0421",
		DebtorName:      "John Smith",
		PropertyAddress: "Flat 3, 12 Harbour Road, Bristol",
		DebtAmount:      decimal.NewFromInt(1000),
		TotalCosts:      decimal.Zero,
		Stage:           model.StageNew,
		Status:          model.StatusActive,
	}
}

func TestRenderLBA1(t *testing.T) {
	content, err := Render(testCase(), model.DocumentLBA1, renderTime)
	require.NoError(t, err)

	assert.Contains(t, content, "LETTER BEFORE ACTION - FIRST NOTICE")
	assert.Contains(t, content, "Date: 10 March 2026")
	assert.Contains(t, content, "Case Reference: DC2026-0421")
	assert.Contains(t, content, "Dear John Smith,")
	assert.Contains(t, content, "AMOUNT OUTSTANDING: £1000.00")
	assert.Contains(t, content, "Current costs: £225.00")
	assert.Contains(t, content, "Total amount now due: £1225.00")
}

func TestRenderLBA2(t *testing.T) {
	c := testCase()
	sent := renderTime.AddDate(0, 0, -30)
	c.LBA1SentDate = &sent
	c.Stage = model.StageLBA1Sent
	c.TotalCosts = decimal.NewFromInt(225)

	content, err := Render(c, model.DocumentLBA2, renderTime)
	require.NoError(t, err)

	assert.Contains(t, content, "LETTER BEFORE ACTION - FINAL NOTICE")
	assert.Contains(t, content, "Further to our letter dated 08 February 2026")
	assert.Contains(t, content, "PREVIOUS COSTS: £225.00")
	assert.Contains(t, content, "ADDITIONAL COSTS: £150.00")
	// Fixed stage surcharges, not the running total.
	assert.Contains(t, content, "TOTAL NOW DUE: £1375.00")
}

func TestRenderLBA2WithoutSentDate(t *testing.T) {
	content, err := Render(testCase(), model.DocumentLBA2, renderTime)
	require.NoError(t, err)

	assert.Contains(t, content, "Further to our letter dated [DATE]")
}

func TestRenderMortgageeLetter(t *testing.T) {
	c := testCase()
	name := "Halifax PLC"
	address := "Trinity Road, Halifax"
	c.MortgageeName = &name
	c.MortgageeAddress = &address
	c.TotalCosts = decimal.NewFromInt(770)
	c.Stage = model.StageMortgageeContacted

	content, err := Render(c, model.DocumentMortgageeLetter1, renderTime)
	require.NoError(t, err)

	assert.Contains(t, content, "NOTICE TO MORTGAGEE - SERVICE CHARGE ARREARS")
	assert.Contains(t, content, "To: Halifax PLC")
	assert.Contains(t, content, "BORROWER: John Smith")
	assert.Contains(t, content, "ORIGINAL DEBT: £1000.00")
	assert.Contains(t, content, "LEGAL COSTS TO DATE: £770.00")
	assert.Contains(t, content, "TOTAL AMOUNT DUE: £1770.00")
}

func TestRenderMortgageeLetterPlaceholders(t *testing.T) {
	content, err := Render(testCase(), model.DocumentMortgageeLetter1, renderTime)
	require.NoError(t, err)

	assert.Contains(t, content, "To: [MORTGAGEE NAME]")
	assert.Contains(t, content, "[MORTGAGEE ADDRESS]")
}

func TestRenderNotGatedOnStage(t *testing.T) {
	// An LBA1 can be regenerated after the case has moved past that stage.
	c := testCase()
	c.Stage = model.StageCCJFiled
	c.TotalCosts = decimal.NewFromInt(1270)

	content, err := Render(c, model.DocumentLBA1, renderTime)
	require.NoError(t, err)
	assert.Contains(t, content, "Total amount now due: £1225.00")
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := Render(testCase(), model.DocumentKind("EVICTION_NOTICE"), renderTime)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidDocumentType))
}
