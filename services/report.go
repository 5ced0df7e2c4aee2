package services

// ReportData holds everything a report export needs. CreatedDate is
// injected by the caller so the calculation core itself stays free of
// clock dependence.
type ReportData struct {
	ProductName string
	CreatedDate string
	Result      CalcResult
}

// sortedByContribution returns the ingredient costs ordered by line cost
// descending, ties keeping their original order.
func (d ReportData) sortedByContribution() []IngredientCost {
	return TopContributors(d.Result.Ingredients, len(d.Result.Ingredients))
}
