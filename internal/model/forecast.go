package model

// ForecastResult holds the projected price of a city for a target year under the
// three scenarios. It is computed fresh for every request.
type ForecastResult struct {
	City        string  `json:"city"`
	TargetYear  int     `json:"targetYear"`
	Baseline    float64 `json:"baseline"`
	Optimistic  float64 `json:"optimistic"`
	Pessimistic float64 `json:"pessimistic"`
}

// Line is a fitted straight line price = Slope*year + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// TrendPoint is the value of each fitted scenario line at one historical year.
type TrendPoint struct {
	Year        int     `json:"year"`
	Actual      float64 `json:"actual"`
	Baseline    float64 `json:"baseline"`
	Optimistic  float64 `json:"optimistic"`
	Pessimistic float64 `json:"pessimistic"`
}

// Trend describes the three fitted lines of a series and their values over the
// historical years, used to overlay trend lines on a price chart.
type Trend struct {
	City        string       `json:"city"`
	Baseline    Line         `json:"baseline"`
	Optimistic  Line         `json:"optimistic"`
	Pessimistic Line         `json:"pessimistic"`
	Points      []TrendPoint `json:"points"`
}

// SeriesResponse is the history of a city together with its fitted trend.
// Trend is nil when the city has no records.
type SeriesResponse struct {
	Series CitySeries `json:"series"`
	Trend  *Trend     `json:"trend,omitempty"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}
