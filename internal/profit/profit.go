package profit

const daysPerYear = 365

// DailyProfit returns the profit earned per day by a position at the
// given annual percentage rate. A negative rate yields a daily loss.
func DailyProfit(aprPercent, startPosition float64) float64 {
	dailyRate := aprPercent / 100 / daysPerYear
	return startPosition * dailyRate
}

// CumulativeProfits simulates simple, non-compounding accrual: element i
// holds the running total after day i+1, so the last element tracks
// dailyProfit * numDays. A non-positive horizon yields an empty series.
func CumulativeProfits(dailyProfit float64, numDays int) []float64 {
	if numDays <= 0 {
		return nil
	}

	series := make([]float64, 0, numDays)
	total := 0.0
	for day := 0; day < numDays; day++ {
		total += dailyProfit
		series = append(series, total)
	}
	return series
}
