package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func uintPtr(v uint) *uint { return &v }

func TestTransactionNormalize(t *testing.T) {
	tests := []struct {
		name     string
		tx       Transaction
		wantErr  bool
		validate func(t *testing.T, tx Transaction)
	}{
		{
			name: "fornecedor clears other references",
			tx: Transaction{
				Type:          TypeDespesa,
				Category:      CategoryFornecedor,
				Amount:        decimal.NewFromInt(100),
				PaymentMethod: PaymentPix,
				DueDate:       date("2024-03-15"),
				SupplierID:    uintPtr(3),
				CustomerID:    uintPtr(7),
				EmployeeID:    uintPtr(9),
			},
			validate: func(t *testing.T, tx Transaction) {
				if tx.SupplierID == nil || *tx.SupplierID != 3 {
					t.Errorf("SupplierID = %v, want 3", tx.SupplierID)
				}
				if tx.CustomerID != nil || tx.EmployeeID != nil {
					t.Errorf("stale references kept: customer=%v employee=%v", tx.CustomerID, tx.EmployeeID)
				}
			},
		},
		{
			name: "fornecedor without supplier fails",
			tx: Transaction{
				Type:          TypeDespesa,
				Category:      CategoryFornecedor,
				Amount:        decimal.NewFromInt(100),
				PaymentMethod: PaymentPix,
				DueDate:       date("2024-03-15"),
			},
			wantErr: true,
		},
		{
			name: "imposto requires a description",
			tx: Transaction{
				Type:          TypeDespesa,
				Category:      CategoryImposto,
				Description:   "   ",
				Amount:        decimal.NewFromInt(50),
				PaymentMethod: PaymentDinheiro,
				DueDate:       date("2024-03-15"),
			},
			wantErr: true,
		},
		{
			name: "funcionario requires an employee",
			tx: Transaction{
				Type:          TypeDespesa,
				Category:      CategoryFuncionario,
				Amount:        decimal.NewFromInt(2500),
				PaymentMethod: PaymentPix,
				DueDate:       date("2024-03-05"),
			},
			wantErr: true,
		},
		{
			name: "credito keeps installments and drops terms",
			tx: Transaction{
				Type:             TypeDespesa,
				Category:         CategoryImposto,
				Description:      "ISS",
				Amount:           decimal.NewFromInt(300),
				PaymentMethod:    PaymentCredito,
				Installments:     6,
				InstallmentTerms: "30,60",
				DueDate:          date("2024-03-15"),
				DueDate2:         datePtr("2024-04-15"),
			},
			validate: func(t *testing.T, tx Transaction) {
				if tx.Installments != 6 {
					t.Errorf("Installments = %d, want 6", tx.Installments)
				}
				if tx.InstallmentTerms != "" || tx.DueDate2 != nil {
					t.Errorf("terms not cleared: terms=%q due2=%v", tx.InstallmentTerms, tx.DueDate2)
				}
			},
		},
		{
			name: "credito with 13 installments fails",
			tx: Transaction{
				Type:          TypeDespesa,
				Category:      CategoryImposto,
				Description:   "ISS",
				Amount:        decimal.NewFromInt(300),
				PaymentMethod: PaymentCredito,
				Installments:  13,
				DueDate:       date("2024-03-15"),
			},
			wantErr: true,
		},
		{
			name: "faturado 30,60 drops the third due date",
			tx: Transaction{
				Type:             TypeDespesa,
				Category:         CategoryFornecedor,
				SupplierID:       uintPtr(1),
				Amount:           decimal.NewFromInt(900),
				PaymentMethod:    PaymentFaturado,
				InstallmentTerms: "30,60",
				DueDate:          date("2024-03-15"),
				DueDate2:         datePtr("2024-04-15"),
				DueDate3:         datePtr("2024-05-15"),
			},
			validate: func(t *testing.T, tx Transaction) {
				if tx.DueDate2 == nil {
					t.Error("DueDate2 cleared, want kept")
				}
				if tx.DueDate3 != nil {
					t.Errorf("DueDate3 = %v, want nil", tx.DueDate3)
				}
			},
		},
		{
			name: "faturado with unknown terms fails",
			tx: Transaction{
				Type:             TypeDespesa,
				Category:         CategoryFornecedor,
				SupplierID:       uintPtr(1),
				Amount:           decimal.NewFromInt(900),
				PaymentMethod:    PaymentFaturado,
				InstallmentTerms: "45,90",
				DueDate:          date("2024-03-15"),
			},
			wantErr: true,
		},
		{
			name: "zero amount fails",
			tx: Transaction{
				Type:          TypeReceita,
				Category:      CategoryCliente,
				CustomerID:    uintPtr(1),
				Amount:        decimal.Zero,
				PaymentMethod: PaymentPix,
				DueDate:       date("2024-03-15"),
			},
			wantErr: true,
		},
		{
			name: "empty status defaults to pendente",
			tx: Transaction{
				Type:          TypeReceita,
				Category:      CategoryCliente,
				CustomerID:    uintPtr(1),
				Amount:        decimal.NewFromInt(10),
				PaymentMethod: PaymentPix,
				DueDate:       date("2024-03-15"),
			},
			validate: func(t *testing.T, tx Transaction) {
				if tx.Status != StatusPendente {
					t.Errorf("Status = %q, want %q", tx.Status, StatusPendente)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Normalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, tt.tx)
			}
		})
	}
}

func TestTermDueDates(t *testing.T) {
	tests := []struct {
		terms   string
		want    int
		wantErr bool
	}{
		{"30", 1, false},
		{"30,60", 2, false},
		{"30,60,90", 3, false},
		{"", 0, true},
		{"60,90", 0, true},
	}
	for _, tt := range tests {
		got, err := TermDueDates(tt.terms)
		if (err != nil) != tt.wantErr {
			t.Errorf("TermDueDates(%q) error = %v, wantErr %v", tt.terms, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("TermDueDates(%q) = %d, want %d", tt.terms, got, tt.want)
		}
	}
}
