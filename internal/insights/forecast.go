package insights

import "store-dashboard/internal/models"

const (
	ForecastHorizonDays = 7
	minForecastDates    = 2
	hoursPerDay         = 24
	notEnoughDates      = "insufficient data: forecast needs at least 2 distinct dates"
)

// LinearFit is an ordinary least squares fit of y on a single predictor.
type LinearFit struct {
	Slope     float64
	Intercept float64
}

func (f LinearFit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// FitLine fits y = intercept + slope*x. ok is false when x has no variance.
func FitLine(x, y []float64) (fit LinearFit, ok bool) {
	if len(x) != len(y) || len(x) < minForecastDates {
		return LinearFit{}, false
	}

	mx, my := mean(x), mean(y)
	var cov, variance float64
	for i := range x {
		dx := x[i] - mx
		cov += dx * (y[i] - my)
		variance += dx * dx
	}
	if variance == 0 {
		return LinearFit{}, false
	}

	fit.Slope = cov / variance
	fit.Intercept = my - fit.Slope*mx
	return fit, true
}

// ForecastOf projects daily revenue seven days past the last date using a
// straight line fitted on days since the first date.
func ForecastOf(daily []models.DailySummary) models.Forecast {
	fc := models.Forecast{HorizonDays: ForecastHorizonDays}
	if len(daily) < minForecastDates {
		fc.Reason = notEnoughDates
		return fc
	}

	first := daily[0].Date
	x := make([]float64, len(daily))
	y := make([]float64, len(daily))
	lastDay := 0
	for i, d := range daily {
		day := int(d.Date.Sub(first).Hours() / hoursPerDay)
		x[i] = float64(day)
		y[i] = d.Revenue
		lastDay = max(lastDay, day)
	}

	fit, ok := FitLine(x, y)
	if !ok {
		fc.Reason = notEnoughDates
		return fc
	}

	fc.Available = true
	fc.Slope = fit.Slope
	fc.Intercept = fit.Intercept
	fc.TargetDay = lastDay + ForecastHorizonDays
	fc.Predicted = fit.Predict(float64(fc.TargetDay))
	return fc
}
