// Package report computes the dashboard aggregates: monthly cash flow,
// period profit and the distribution charts. All functions are pure over
// already-fetched rows so handlers stay thin and the math stays testable.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"obra_system/internal/domain"
)

// monthAbbr holds the pt-BR month abbreviations used as chart axis labels
var monthAbbr = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// CashFlowPoint is one month of the yearly series. The capitalized JSON keys
// match the chart's legend labels.
type CashFlowPoint struct {
	Month      string          `json:"month"`
	Receitas   decimal.Decimal `json:"Receitas"`
	Fornecedor decimal.Decimal `json:"Fornecedor"`
	Imposto    decimal.Decimal `json:"Imposto"`
	Lucro      decimal.Decimal `json:"Lucro"`
}

// StatusCount is one slice of the project distribution chart
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SupplierExpense is one slice of the expense distribution chart
type SupplierExpense struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CashFlow builds the 12-point series for one calendar year, in chronological
// order, with zero values for months that have no paid transactions. Only paid
// rows count: receitas capture every paid receivable, while the expense side
// tracks just the fornecedor and imposto categories.
func CashFlow(txs []domain.Transaction) []CashFlowPoint {
	points := make([]CashFlowPoint, 12)
	for i := range points {
		points[i] = CashFlowPoint{
			Month:      monthAbbr[i],
			Receitas:   decimal.Zero,
			Fornecedor: decimal.Zero,
			Imposto:    decimal.Zero,
		}
	}
	for _, t := range txs {
		if t.Status != domain.StatusPago {
			continue
		}
		i := int(t.DueDate.Month()) - 1
		switch {
		case t.Type == domain.TypeReceita:
			points[i].Receitas = points[i].Receitas.Add(t.Amount)
		case t.Category == domain.CategoryFornecedor:
			points[i].Fornecedor = points[i].Fornecedor.Add(t.Amount)
		case t.Category == domain.CategoryImposto:
			points[i].Imposto = points[i].Imposto.Add(t.Amount)
		}
	}
	for i := range points {
		points[i].Lucro = points[i].Receitas.Sub(points[i].Fornecedor).Sub(points[i].Imposto)
	}
	return points
}

// PaidTotals sums the paid rows split by type
func PaidTotals(txs []domain.Transaction) (receitas, despesas decimal.Decimal) {
	receitas, despesas = decimal.Zero, decimal.Zero
	for _, t := range txs {
		if t.Status != domain.StatusPago {
			continue
		}
		if t.Type == domain.TypeReceita {
			receitas = receitas.Add(t.Amount)
		} else {
			despesas = despesas.Add(t.Amount)
		}
	}
	return receitas, despesas
}

// statusLabels maps project statuses to their chart labels
var statusLabels = []struct {
	status string
	label  string
}{
	{domain.ProjectStatusOrcamento, "Orçamento"},
	{domain.ProjectStatusEmAndamento, "Em Andamento"},
	{domain.ProjectStatusConcluida, "Concluída"},
}

// ProjectDistribution counts projects per status, omitting empty slices
func ProjectDistribution(projects []domain.Project) []StatusCount {
	counts := make([]StatusCount, 0, len(statusLabels))
	for _, sl := range statusLabels {
		n := 0
		for _, p := range projects {
			if p.Status == sl.status {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, StatusCount{Name: sl.label, Value: n})
		}
	}
	return counts
}

// TopSupplierExpenses groups paid fornecedor-category payables by description
// and returns the limit largest, descending by value with ties broken by name
func TopSupplierExpenses(txs []domain.Transaction, limit int) []SupplierExpense {
	grouped := map[string]decimal.Decimal{}
	for _, t := range txs {
		if t.Type != domain.TypeDespesa || t.Category != domain.CategoryFornecedor || t.Status != domain.StatusPago {
			continue
		}
		sum, ok := grouped[t.Description]
		if !ok {
			sum = decimal.Zero
		}
		grouped[t.Description] = sum.Add(t.Amount)
	}
	expenses := make([]SupplierExpense, 0, len(grouped))
	for name, value := range grouped {
		expenses = append(expenses, SupplierExpense{Name: name, Value: value})
	}
	sort.Slice(expenses, func(i, j int) bool {
		if cmp := expenses[i].Value.Cmp(expenses[j].Value); cmp != 0 {
			return cmp > 0
		}
		return expenses[i].Name < expenses[j].Name
	})
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses
}

// MonthRange returns the first and last calendar day of a "YYYY-MM" month
func MonthRange(yearMonth string) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01", yearMonth)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q", yearMonth)
	}
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// YearRange returns January 1st and December 31st of a 4-digit year
func YearRange(year string) (start, end time.Time, err error) {
	start, err = time.Parse("2006", year)
	if err != nil || len(year) != 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year %q", year)
	}
	end = start.AddDate(1, 0, -1)
	return start, end, nil
}
