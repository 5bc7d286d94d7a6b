package finance

// InvestmentRollup is the per-director summary derived from the raw
// payment list. It is recomputed on every query, never stored.
type InvestmentRollup struct {
	DirectorID               string  `json:"director_id"`
	Name                     string  `json:"name"`
	TotalInvestmentAmount    float64 `json:"total_investment_amount"`
	ExpectedInvestmentAmount float64 `json:"expected_investment_amount"`
	DueInvestment            float64 `json:"due_investment"`
	SharePercentage          float64 `json:"share_percentage"`
}

// Aggregate groups payments by director and accumulates totals. Output
// order is the insertion order of each director's first appearance.
// DueInvestment is recomputed from the grown total on every accumulation,
// so the result is independent of payment order within a director.
// SharePercentage is carried from the director reference as-is; it is a
// fixed contractual figure, not derived from the totals.
func Aggregate(records []InvestmentPayment) []InvestmentRollup {
	rollups := make([]InvestmentRollup, 0)
	index := make(map[string]int, len(records))

	for _, rec := range records {
		i, ok := index[rec.DirectorID]
		if !ok {
			i = len(rollups)
			index[rec.DirectorID] = i
			rollups = append(rollups, InvestmentRollup{
				DirectorID:               rec.DirectorID,
				Name:                     rec.DirectorName,
				ExpectedInvestmentAmount: rec.ExpectedInvestmentAmount,
				SharePercentage:          rec.SharePercentage,
			})
		}
		rollups[i].TotalInvestmentAmount += rec.Amount
		rollups[i].DueInvestment = rollups[i].ExpectedInvestmentAmount - rollups[i].TotalInvestmentAmount
	}
	return rollups
}
