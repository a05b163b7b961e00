package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"obra_system/internal/domain"
)

func tx(typ, category, status, due string, amount int64) domain.Transaction {
	d, err := time.Parse("2006-01-02", due)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{
		Type:     typ,
		Category: category,
		Status:   status,
		DueDate:  d,
		Amount:   decimal.NewFromInt(amount),
	}
}

func TestCashFlowShape(t *testing.T) {
	points := CashFlow(nil)

	if len(points) != 12 {
		t.Fatalf("CashFlow(nil) returned %d points, want 12", len(points))
	}
	wantMonths := []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}
	for i, p := range points {
		if p.Month != wantMonths[i] {
			t.Errorf("point %d month = %q, want %q", i, p.Month, wantMonths[i])
		}
		if !p.Receitas.IsZero() || !p.Fornecedor.IsZero() || !p.Imposto.IsZero() || !p.Lucro.IsZero() {
			t.Errorf("point %d not zero-initialized: %+v", i, p)
		}
	}
}

func TestCashFlowMarchScenario(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeReceita, domain.CategoryCliente, domain.StatusPago, "2024-03-10", 1000),
		tx(domain.TypeDespesa, domain.CategoryFornecedor, domain.StatusPago, "2024-03-15", 400),
	}
	points := CashFlow(txs)

	march := points[2]
	if march.Month != "mar" {
		t.Fatalf("points[2].Month = %q, want mar", march.Month)
	}
	if !march.Receitas.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Receitas = %s, want 1000", march.Receitas)
	}
	if !march.Fornecedor.Equal(decimal.NewFromInt(400)) {
		t.Errorf("Fornecedor = %s, want 400", march.Fornecedor)
	}
	if !march.Imposto.IsZero() {
		t.Errorf("Imposto = %s, want 0", march.Imposto)
	}
	if !march.Lucro.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Lucro = %s, want 600", march.Lucro)
	}

	// Every other month stays zero
	for i, p := range points {
		if i == 2 {
			continue
		}
		if !p.Lucro.IsZero() {
			t.Errorf("month %s Lucro = %s, want 0", p.Month, p.Lucro)
		}
	}
}

func TestCashFlowExclusions(t *testing.T) {
	txs := []domain.Transaction{
		// Unpaid rows never count
		tx(domain.TypeReceita, domain.CategoryCliente, domain.StatusPendente, "2024-05-01", 700),
		tx(domain.TypeDespesa, domain.CategoryFornecedor, domain.StatusVencido, "2024-05-02", 300),
		// Paid payables outside fornecedor/imposto stay out of the buckets
		tx(domain.TypeDespesa, domain.CategoryFuncionario, domain.StatusPago, "2024-05-03", 2500),
		tx(domain.TypeDespesa, domain.CategoryCliente, domain.StatusPago, "2024-05-04", 120),
	}
	may := CashFlow(txs)[4]
	if !may.Receitas.IsZero() || !may.Fornecedor.IsZero() || !may.Imposto.IsZero() {
		t.Errorf("may bucket = %+v, want all-zero", may)
	}
}

func TestPaidTotalsAndMonthlyProfit(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeReceita, domain.CategoryCliente, domain.StatusPago, "2024-03-10", 1000),
		tx(domain.TypeDespesa, domain.CategoryFornecedor, domain.StatusPago, "2024-03-15", 400),
		tx(domain.TypeDespesa, domain.CategoryImposto, domain.StatusPendente, "2024-03-20", 999),
	}
	receitas, despesas := PaidTotals(txs)
	if !receitas.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("receitas = %s, want 1000", receitas)
	}
	if !despesas.Equal(decimal.NewFromInt(400)) {
		t.Errorf("despesas = %s, want 400", despesas)
	}
	if profit := receitas.Sub(despesas); !profit.Equal(decimal.NewFromInt(600)) {
		t.Errorf("profit = %s, want 600", profit)
	}
}

// The single-month profit and the matching yearly bucket must agree when only
// bucket-visible categories are involved.
func TestMonthlyProfitMatchesBucket(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeReceita, domain.CategoryCliente, domain.StatusPago, "2024-03-10", 1000),
		tx(domain.TypeDespesa, domain.CategoryFornecedor, domain.StatusPago, "2024-03-15", 400),
		tx(domain.TypeDespesa, domain.CategoryImposto, domain.StatusPago, "2024-03-25", 100),
	}
	receitas, despesas := PaidTotals(txs)
	fromTotals := receitas.Sub(despesas)
	fromBucket := CashFlow(txs)[2].Lucro
	if !fromTotals.Equal(fromBucket) {
		t.Errorf("profit mismatch: totals say %s, bucket says %s", fromTotals, fromBucket)
	}
}

// Toggling a transaction pago -> pendente -> pago twice returns every
// aggregate to its original value.
func TestToggleIdempotence(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeReceita, domain.CategoryCliente, domain.StatusPago, "2024-03-10", 1000),
		tx(domain.TypeDespesa, domain.CategoryFornecedor, domain.StatusPago, "2024-03-15", 400),
	}
	beforeReceitas, beforeDespesas := PaidTotals(txs)
	beforeBucket := CashFlow(txs)[2]

	txs[0].Status = domain.StatusPendente // pago -> pendente
	txs[0].Status = domain.StatusPago     // pendente -> pago

	afterReceitas, afterDespesas := PaidTotals(txs)
	afterBucket := CashFlow(txs)[2]

	if !beforeReceitas.Equal(afterReceitas) || !beforeDespesas.Equal(afterDespesas) {
		t.Errorf("totals changed after double toggle: (%s, %s) vs (%s, %s)",
			beforeReceitas, beforeDespesas, afterReceitas, afterDespesas)
	}
	if !beforeBucket.Lucro.Equal(afterBucket.Lucro) {
		t.Errorf("bucket Lucro changed after double toggle: %s vs %s", beforeBucket.Lucro, afterBucket.Lucro)
	}
}

func TestProjectDistribution(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.ProjectStatusOrcamento},
		{Status: domain.ProjectStatusEmAndamento},
		{Status: domain.ProjectStatusEmAndamento},
	}
	dist := ProjectDistribution(projects)

	if len(dist) != 2 {
		t.Fatalf("distribution has %d entries, want 2 (zero-count statuses omitted)", len(dist))
	}
	if dist[0].Name != "Orçamento" || dist[0].Value != 1 {
		t.Errorf("dist[0] = %+v, want Orçamento/1", dist[0])
	}
	if dist[1].Name != "Em Andamento" || dist[1].Value != 2 {
		t.Errorf("dist[1] = %+v, want Em Andamento/2", dist[1])
	}
}

func TestTopSupplierExpenses(t *testing.T) {
	mk := func(desc string, amount int64, status string) domain.Transaction {
		t := tx(domain.TypeDespesa, domain.CategoryFornecedor, status, "2024-06-01", amount)
		t.Description = desc
		return t
	}
	txs := []domain.Transaction{
		mk("Madeireira Central", 500, domain.StatusPago),
		mk("Madeireira Central", 300, domain.StatusPago),
		mk("Depósito Norte", 600, domain.StatusPago),
		mk("Serraria Leste", 100, domain.StatusPago),
		mk("Ignorada", 9999, domain.StatusPendente), // unpaid rows excluded
	}

	top := TopSupplierExpenses(txs, 2)
	if len(top) != 2 {
		t.Fatalf("top has %d entries, want 2", len(top))
	}
	if top[0].Name != "Madeireira Central" || !top[0].Value.Equal(decimal.NewFromInt(800)) {
		t.Errorf("top[0] = %+v, want Madeireira Central/800", top[0])
	}
	if top[1].Name != "Depósito Norte" || !top[1].Value.Equal(decimal.NewFromInt(600)) {
		t.Errorf("top[1] = %+v, want Depósito Norte/600", top[1])
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-02")
	if err != nil {
		t.Fatalf("MonthRange() error = %v", err)
	}
	if start.Format("2006-01-02") != "2024-02-01" {
		t.Errorf("start = %s, want 2024-02-01", start.Format("2006-01-02"))
	}
	if end.Format("2006-01-02") != "2024-02-29" {
		t.Errorf("end = %s, want 2024-02-29 (leap year)", end.Format("2006-01-02"))
	}
	if _, _, err := MonthRange("2024-13"); err == nil {
		t.Error("MonthRange(2024-13) error = nil, want invalid month")
	}
}

func TestYearRange(t *testing.T) {
	start, end, err := YearRange("2024")
	if err != nil {
		t.Fatalf("YearRange() error = %v", err)
	}
	if start.Format("2006-01-02") != "2024-01-01" || end.Format("2006-01-02") != "2024-12-31" {
		t.Errorf("range = %s..%s, want full 2024", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	for _, bad := range []string{"24", "abcd", "20245"} {
		if _, _, err := YearRange(bad); err == nil {
			t.Errorf("YearRange(%q) error = nil, want invalid year", bad)
		}
	}
}
