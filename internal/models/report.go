package models

type Report struct {
	Rows            int               `json:"rows"`
	Totals          ExecutiveTotals   `json:"totals"`
	Daily           []DailySummary    `json:"daily"`
	Categories      CategoryBreakdown `json:"categories"`
	Growth          Growth            `json:"growth"`
	Recency         Recency           `json:"recency"`
	Discount        DiscountMetrics   `json:"discount"`
	Health          Health            `json:"health"`
	Recommendations Recommendations   `json:"recommendations"`
	Score           RiskScore         `json:"score"`
	Forecast        Forecast          `json:"forecast"`
}

type ExecutiveTotals struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	TotalOrders     int     `json:"total_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Percent  float64 `json:"percent"`
}

// CategoryBreakdown holds revenue per category sorted descending. Top and
// Bottom are the first and last entries of that order.
type CategoryBreakdown struct {
	Shares     []CategoryShare `json:"shares"`
	Top        string          `json:"top,omitempty"`
	Bottom     string          `json:"bottom,omitempty"`
	MaxPercent float64         `json:"max_percent"`
}

type GrowthTrend string

const (
	GrowthPositive  GrowthTrend = "positive growth"
	GrowthDeclining GrowthTrend = "declining"
	GrowthStable    GrowthTrend = "stable"
)

// Growth compares the mean daily revenue of the two halves of the period.
// When Available is false Reason explains why the section was skipped.
type Growth struct {
	Available      bool        `json:"available"`
	Reason         string      `json:"reason,omitempty"`
	FirstHalfMean  float64     `json:"first_half_mean"`
	SecondHalfMean float64     `json:"second_half_mean"`
	RatePct        float64     `json:"rate_pct"`
	Trend          GrowthTrend `json:"trend,omitempty"`
}

type RecencyTrend string

const (
	RecencyDeclining RecencyTrend = "declining"
	RecencyImproving RecencyTrend = "improving"
	RecencySteady    RecencyTrend = "steady"
)

type Recency struct {
	RecentRevenue  float64      `json:"recent_revenue"`
	OverallRevenue float64      `json:"overall_revenue"`
	RecentOrders   float64      `json:"recent_orders"`
	OverallOrders  float64      `json:"overall_orders"`
	RevenueTrend   RecencyTrend `json:"revenue_trend"`
}

type DiscountDependency string

const (
	DependencyHigh     DiscountDependency = "high dependency"
	DependencyModerate DiscountDependency = "moderate"
	DependencyLow      DiscountDependency = "low dependency"
)

type DiscountMetrics struct {
	AvgDiscount   float64            `json:"avg_discount"`
	DependencyPct float64            `json:"dependency_pct"`
	Dependency    DiscountDependency `json:"dependency"`
}

// Finding is one triggered alert or recommendation.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Health lists the triggered alerts. Stable is set, with Status holding the
// stable message, when no alert fired.
type Health struct {
	Alerts []Finding `json:"alerts"`
	Stable bool      `json:"stable"`
	Status string    `json:"status,omitempty"`
}

// Recommendations lists the triggered actions. Default holds the fallback
// message when no rule applied.
type Recommendations struct {
	Actions []Finding `json:"actions"`
	Default string    `json:"default,omitempty"`
}

type ScoreBand string

const (
	BandStrong         ScoreBand = "strong"
	BandNeedsAttention ScoreBand = "needs attention"
	BandAtRisk         ScoreBand = "at risk"
)

type RiskScore struct {
	Score  int       `json:"score"`
	Flags  []string  `json:"flags"`
	Band   ScoreBand `json:"band"`
	Detail string    `json:"detail"`
}

// Forecast is a straight-line trend projection of daily revenue. It is not a
// validated forecast.
type Forecast struct {
	Available   bool    `json:"available"`
	Reason      string  `json:"reason,omitempty"`
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	HorizonDays int     `json:"horizon_days"`
	TargetDay   int     `json:"target_day"`
	Predicted   float64 `json:"predicted"`
}
