package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// MonthOverview is a compact summary for a specific year+month.
type MonthOverview struct {
	Month      YearMonth
	Total      Money
	ByCategory []CategoryAmount
}

// OverviewOf sums the given expenses that fall in month, overall and per
// category. Categories without spending are omitted; order follows Categories.
func OverviewOf(month YearMonth, expenses []*Expense) MonthOverview {
	sums := make(map[Category]Money)
	var total Money
	for _, e := range expenses {
		if e.Bucket() != month {
			continue
		}
		total = total.Add(e.Amount)
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	overview := MonthOverview{Month: month, Total: total}
	for _, c := range Categories {
		if amt, ok := sums[c]; ok {
			overview.ByCategory = append(overview.ByCategory, CategoryAmount{Category: c, Amount: amt})
		}
	}
	return overview
}

// YearTotals returns twelve monthly totals (January first) for year.
func YearTotals[T interface {
	Bucket() YearMonth
	Value() Money
}](year int, records []T) [12]Money {
	var totals [12]Money
	for _, r := range records {
		ym := r.Bucket()
		if ym.Year != year {
			continue
		}
		totals[ym.Month-1] = totals[ym.Month-1].Add(r.Value())
	}
	return totals
}
