package insights

import (
	"fmt"

	"store-dashboard/internal/models"
)

// Snapshot is the set of metrics every alert, recommendation and risk rule
// is evaluated against.
type Snapshot struct {
	ProfitMarginPct float64
	AvgDiscount     float64
	MaxCategoryPct  float64
	Recency         models.Recency
}

// Rule maps a predicate over a Snapshot to a fixed message.
type Rule struct {
	Code    string
	Message string
	When    func(Snapshot) bool
}

const (
	lowMarginPct          = 8.0
	discountErosionPct    = 20.0
	riskDiscountPct       = 25.0
	concentrationPct      = 60.0
	riskDeduction         = 20
	maxScore              = 100
	strongScore           = 80
	needsAttentionScore   = 60
	StableStatus          = "Business performance is stable. No major risks detected."
	DefaultRecommendation = "Current strategy looks healthy. Maintain consistency."
)

func lowMargin(s Snapshot) bool { return s.ProfitMarginPct < lowMarginPct }
func salesDropping(s Snapshot) bool { return revenueDeclining(s.Recency) }
func salesImproving(s Snapshot) bool { return revenueImproving(s.Recency) }
func footfallDropping(s Snapshot) bool { return ordersDeclining(s.Recency) }
func discountEroding(s Snapshot) bool { return s.AvgDiscount > discountErosionPct }
func concentrated(s Snapshot) bool { return s.MaxCategoryPct > concentrationPct }
func heavyDiscounting(s Snapshot) bool { return s.AvgDiscount > riskDiscountPct }

// AlertRules are evaluated independently; every matching rule is reported.
var AlertRules = []Rule{
	{Code: "sales_drop", Message: "Sales have dropped in the last few days.", When: salesDropping},
	{Code: "sales_improving", Message: "Sales are improving compared to earlier period.", When: salesImproving},
	{Code: "low_margin", Message: "Overall profit margin is low.", When: lowMargin},
	{Code: "reduced_footfall", Message: "Customer footfall has reduced recently.", When: footfallDropping},
	{Code: "discount_erosion", Message: "High average discount may be reducing profitability.", When: discountEroding},
	{Code: "category_concentration", Message: "Revenue is heavily dependent on one category.", When: concentrated},
}

var RecommendationRules = []Rule{
	{Code: "review_pricing", Message: "Review supplier pricing or reduce heavy discounts.", When: lowMargin},
	{Code: "boost_footfall", Message: "Consider local promotions or marketing to increase footfall.", When: footfallDropping},
	{Code: "rethink_discounts", Message: "Re-evaluate discount strategy and check if it increases volume enough.", When: discountEroding},
	{Code: "balance_categories", Message: "Increase focus on weaker categories to balance revenue.", When: concentrated},
	{Code: "short_term_offers", Message: "Run short-term offers to boost immediate sales.", When: salesDropping},
}

// RiskRules each deduct 20 points from a score of 100.
var RiskRules = []Rule{
	{Code: "low_margin", Message: "profit margin below 8%", When: lowMargin},
	{Code: "heavy_discounting", Message: "average discount above 25%", When: heavyDiscounting},
	{Code: "sales_drop", Message: "recent revenue below 85% of average", When: salesDropping},
	{Code: "reduced_footfall", Message: "recent orders below 85% of average", When: footfallDropping},
}

// Evaluate runs every rule against s in table order without short-circuiting.
func Evaluate(rules []Rule, s Snapshot) []models.Finding {
	findings := []models.Finding{}
	for _, r := range rules {
		if r.When(s) {
			findings = append(findings, models.Finding{Code: r.Code, Message: r.Message})
		}
	}
	return findings
}

func HealthOf(s Snapshot) models.Health {
	h := models.Health{Alerts: Evaluate(AlertRules, s)}
	if len(h.Alerts) == 0 {
		h.Stable = true
		h.Status = StableStatus
	}
	return h
}

func RecommendationsOf(s Snapshot) models.Recommendations {
	r := models.Recommendations{Actions: Evaluate(RecommendationRules, s)}
	if len(r.Actions) == 0 {
		r.Default = DefaultRecommendation
	}
	return r
}

func ScoreOf(s Snapshot) models.RiskScore {
	flags := Evaluate(RiskRules, s)
	rs := models.RiskScore{
		Score: maxScore - riskDeduction*len(flags),
		Flags: make([]string, 0, len(flags)),
	}
	for _, f := range flags {
		rs.Flags = append(rs.Flags, f.Code)
	}

	switch {
	case rs.Score >= strongScore:
		rs.Band = models.BandStrong
		rs.Detail = "Business performance is strong."
	case rs.Score >= needsAttentionScore:
		rs.Band = models.BandNeedsAttention
		rs.Detail = "Business is stable but needs attention in some areas."
	default:
		rs.Band = models.BandAtRisk
		rs.Detail = fmt.Sprintf("Business performance is at risk (%d risk flags). Immediate action required.", len(flags))
	}
	return rs
}
