package analysis

import (
	"sort"

	"github.com/Veraticus/salesflow/internal/model"
)

// OrderByMonth returns a copy of t sorted January through December.
func OrderByMonth(t *model.Table) *model.Table {
	out := t.Clone()
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Month < out.Rows[j].Month
	})
	return out
}
