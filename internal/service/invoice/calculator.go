package invoice

import (
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// millisPerAverageYear is 365.25 days, which absorbs leap years.
const millisPerAverageYear int64 = 365*24*60*60*1000 + 6*60*60*1000

var hundred = decimal.NewFromInt(100)

type Calculator struct {
	now func() time.Time
}

func NewCalculator(now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

// CalculateBasicSalary returns hours * rate. Zero is a valid salary, only a negative product fails.
func (c *Calculator) CalculateBasicSalary(hours, ratePerHour decimal.Decimal) (decimal.Decimal, error) {
	basicSalary := hours.Mul(ratePerHour)
	if basicSalary.IsNegative() {
		return decimal.Zero, invoice.ErrInvalidBasicSalary
	}
	return basicSalary, nil
}

// CalculateSeniorityAmount grants 1% of the basic salary per full year of service.
func (c *Calculator) CalculateSeniorityAmount(basicSalary decimal.Decimal, serviceStartDate time.Time) (decimal.Decimal, error) {
	years := c.YearsOfService(serviceStartDate)
	if years < 0 {
		return decimal.Zero, invoice.ErrInvalidServiceStartDate
	}
	if years == 0 {
		return decimal.Zero, nil
	}

	return basicSalary.Mul(decimal.NewFromInt(years)).Div(hundred), nil
}

// YearsOfService floors the elapsed time since start into average-length years.
// A start date in the future yields a negative number.
func (c *Calculator) YearsOfService(serviceStartDate time.Time) int64 {
	elapsed := c.now().Sub(serviceStartDate).Milliseconds()

	years := elapsed / millisPerAverageYear
	if elapsed%millisPerAverageYear != 0 && elapsed < 0 {
		years--
	}
	return years
}

func (c *Calculator) CalculateAdditionalConceptsAmount(concepts []invoice.AdditionalConceptRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range concepts {
		total = total.Add(item.Amount)
	}
	return total
}

// CalculateExtraHoursAmount is zero unless both the hours and their rate are known.
func (c *Calculator) CalculateExtraHoursAmount(extraHours, costPerExtraHour *decimal.Decimal) decimal.Decimal {
	if extraHours == nil || costPerExtraHour == nil {
		return decimal.Zero
	}
	return extraHours.Mul(*costPerExtraHour)
}

// ValidateInvoiceDate rejects periods after the current one.
//
// The current month is compared zero-indexed (January == 0) against the one-indexed
// input month, so the current month itself is rejected while the current year is
// still running. Existing clients depend on this behavior.
func (c *Calculator) ValidateInvoiceDate(month, year int) bool {
	if month == 0 && year == 0 {
		return false
	}

	now := c.now()
	currentMonth := int(now.Month()) - 1
	currentYear := now.Year()

	if year > currentYear {
		return false
	}
	if year == currentYear && month > currentMonth {
		return false
	}

	return true
}
