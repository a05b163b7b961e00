package api

import (
	"obra_system/internal/domain"
	"testing"
)

func TestParseDatePtr(t *testing.T) {
	d, err := parseDatePtr("")
	if err != nil || d != nil {
		t.Fatalf("empty input: got %v, %v", d, err)
	}
	d, err = parseDatePtr("2024-03-15")
	if err != nil || d == nil {
		t.Fatalf("valid input: got %v, %v", d, err)
	}
	if d.Year() != 2024 || int(d.Month()) != 3 || d.Day() != 15 {
		t.Fatalf("parsed wrong date: %v", d)
	}
	if _, err := parseDatePtr("15/03/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestParseSalary(t *testing.T) {
	s, err := parseSalary("")
	if err != nil || s != nil {
		t.Fatalf("empty salary: got %v, %v", s, err)
	}
	s, err = parseSalary("3500.50")
	if err != nil || s == nil {
		t.Fatalf("valid salary: got %v, %v", s, err)
	}
	if s.String() != "3500.5" {
		t.Fatalf("salary parsed as %s", s)
	}
	if _, err := parseSalary("abc"); err == nil {
		t.Fatal("expected error for non-numeric salary")
	}
}

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"short", false},
		{"longenough", true},
		{string(make([]byte, 73)), false},
		{string(make([]byte, 72)), true},
	}
	for _, tc := range cases {
		if got := isValidPassword(tc.password); got != tc.want {
			t.Errorf("isValidPassword(%d chars) = %v, want %v", len(tc.password), got, tc.want)
		}
	}
}

func TestApplyTransactionRequest(t *testing.T) {
	supplierID := uint(7)
	req := TransactionRequest{
		Type:          domain.TypeDespesa,
		Category:      domain.CategoryFornecedor,
		Description:   "Cimento",
		Amount:        "1250.00",
		PaymentMethod: domain.PaymentPix,
		DueDate:       "2024-05-10",
		SupplierID:    &supplierID,
	}
	var tx domain.Transaction
	if err := applyTransactionRequest(&tx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Status != domain.StatusPendente {
		t.Errorf("default status = %q", tx.Status)
	}
	if tx.Amount.String() != "1250" {
		t.Errorf("amount = %s", tx.Amount)
	}
	if tx.Installments != 1 {
		t.Errorf("pix installments = %d", tx.Installments)
	}

	// Bad amount and bad due date are rejected before normalization
	req.Amount = "abc"
	if err := applyTransactionRequest(&domain.Transaction{}, req); err == nil {
		t.Error("expected error for bad amount")
	}
	req.Amount = "10"
	req.DueDate = "10/05/2024"
	if err := applyTransactionRequest(&domain.Transaction{}, req); err == nil {
		t.Error("expected error for bad due date")
	}

	// Unset installments on credito defaults to 1
	req.DueDate = "2024-05-10"
	req.PaymentMethod = domain.PaymentCredito
	req.Installments = 0
	var credit domain.Transaction
	if err := applyTransactionRequest(&credit, req); err != nil {
		t.Fatalf("credito with unset installments: %v", err)
	}
	if credit.Installments != 1 {
		t.Errorf("credito default installments = %d", credit.Installments)
	}
}
