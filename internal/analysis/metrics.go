package analysis

import (
	"github.com/Veraticus/salesflow/internal/model"
)

// ComputeMetrics fills the derived columns on a copy of ordered and computes
// the dataset summary. ordered must already be in calendar order.
func ComputeMetrics(ordered *model.Table) (*model.Table, Summary) {
	table := ordered.Clone()
	rows := table.Rows

	for i := range rows {
		r := &rows[i]
		r.Profit = r.Revenue - r.Expenses
		r.ProfitMarginPct = marginPct(r.Profit, r.Revenue)
		if i == 0 {
			r.ProfitMoMChangePct = model.None()
		} else {
			r.ProfitMoMChangePct = changePct(r.Profit, rows[i-1].Profit)
		}
	}

	return table, summarize(rows)
}

func marginPct(profit, revenue float64) model.Optional {
	if revenue == 0 {
		return model.None()
	}
	return model.Some(profit / revenue * 100)
}

func changePct(current, previous float64) model.Optional {
	if previous == 0 {
		return model.None()
	}
	return model.Some((current - previous) / previous * 100)
}

func summarize(rows []model.Row) Summary {
	s := Summary{
		RowCount:            len(rows),
		AboveAverageRevenue: []model.Month{},
		AboveAverageMargin:  []model.Month{},
	}

	var marginSum float64
	var marginCount int
	for i, r := range rows {
		s.TotalRevenue += r.Revenue
		s.TotalExpenses += r.Expenses
		s.TotalProfit += r.Profit
		if v, ok := r.ProfitMarginPct.Get(); ok {
			marginSum += v
			marginCount++
		}

		if s.BestRevenueMonth == nil || r.Revenue > s.BestRevenueMonth.Value {
			s.BestRevenueMonth = &MonthValue{Month: r.Month, Value: r.Revenue}
		}
		if s.WorstProfitMonth == nil || r.Profit < s.WorstProfitMonth.Value {
			s.WorstProfitMonth = &MonthValue{Month: r.Month, Value: r.Profit}
		}
		if v, ok := r.ProfitMoMChangePct.Get(); ok && i > 0 {
			if !s.HighestGrowth.Sufficient || v > s.HighestGrowth.Value {
				s.HighestGrowth = GrowthResult{Month: r.Month, Value: v, Sufficient: true}
			}
		}
	}

	if n := len(rows); n > 0 {
		s.AverageRevenue = model.Some(s.TotalRevenue / float64(n))
		s.AverageExpenses = model.Some(s.TotalExpenses / float64(n))
		s.AverageProfit = model.Some(s.TotalProfit / float64(n))
	}
	if marginCount > 0 {
		s.AverageProfitMargin = model.Some(marginSum / float64(marginCount))
	}

	if avg, ok := s.AverageRevenue.Get(); ok {
		for _, r := range rows {
			if r.Revenue > avg {
				s.AboveAverageRevenue = append(s.AboveAverageRevenue, r.Month)
			}
		}
	}
	if avg, ok := s.AverageProfitMargin.Get(); ok {
		for _, r := range rows {
			if v, defined := r.ProfitMarginPct.Get(); defined && v > avg {
				s.AboveAverageMargin = append(s.AboveAverageMargin, r.Month)
			}
		}
	}

	return s
}
