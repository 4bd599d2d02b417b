package letters

import "github.com/shopspring/decimal"

// Fixed figures quoted in the letters. The LBA letters quote the scheduled
// surcharges for their stage rather than the case's running total.
var (
	lba1Costs = decimal.NewFromInt(225)
	lba2Costs = decimal.NewFromInt(150)
)

const lba1Template = `LETTER BEFORE ACTION - FIRST NOTICE

Date: {{.Today}}
Case Reference: {{.Reference}}

To: {{.DebtorName}}
{{.PropertyAddress}}

Dear {{.DebtorName}},

RE: OUTSTANDING SERVICE CHARGES - {{.PropertyAddress}}

We write on behalf of the property management company regarding outstanding service charges for the above property.

AMOUNT OUTSTANDING: £{{.DebtAmount}}

This letter serves as formal notice that unless payment is received within 28 days from the date of this letter, we will proceed with further recovery action which may include:

1. Issuing County Court proceedings
2. Contacting your mortgage lender
3. Additional legal costs being added to your account

Current costs: £225.00
Total amount now due: £{{.TotalDue}}

Please treat this matter urgently and contact us immediately to arrange payment.

Yours sincerely,
[Property Manager Name]
[Management Company]`

const lba2Template = `LETTER BEFORE ACTION - FINAL NOTICE

Date: {{.Today}}
Case Reference: {{.Reference}}

To: {{.DebtorName}}
{{.PropertyAddress}}

Dear {{.DebtorName}},

RE: FINAL NOTICE - OUTSTANDING SERVICE CHARGES

Further to our letter dated {{.LBA1SentDate}}, we have not received payment or any communication from you.

AMOUNT OUTSTANDING: £{{.DebtAmount}}
PREVIOUS COSTS: £225.00
ADDITIONAL COSTS: £150.00
TOTAL NOW DUE: £{{.TotalDue}}

This is your FINAL opportunity to settle this matter before we:
1. Obtain your property details from HM Land Registry
2. Contact your mortgage lender directly
3. Issue County Court proceedings

You have 14 days from the date of this letter to make payment in full.

Yours sincerely,
[Property Manager Name]
[Management Company]`

const mortgageeLetter1Template = `NOTICE TO MORTGAGEE - SERVICE CHARGE ARREARS

Date: {{.Today}}
Case Reference: {{.Reference}}

To: {{.MortgageeName}}
{{.MortgageeAddress}}

Dear Sir/Madam,

RE: LEASEHOLD PROPERTY - {{.PropertyAddress}}
BORROWER: {{.DebtorName}}

We write to notify you of outstanding service charge arrears on the above leasehold property, which we understand is subject to a mortgage in your favor.

ORIGINAL DEBT: £{{.DebtAmount}}
LEGAL COSTS TO DATE: £{{.CostsToDate}}
TOTAL AMOUNT DUE: £{{.TotalDue}}

Despite sending two Letters Before Action, the borrower has failed to make payment. Under the terms of the lease, these charges constitute a charge on the property and rank in priority to your mortgage.

We respectfully request that you settle this amount within 28 days to protect your security. If we do not receive payment, we will be compelled to issue County Court proceedings which will result in further costs.

Please confirm receipt and your intentions regarding this matter.

Yours faithfully,
[Property Manager Name]
[Management Company]`
