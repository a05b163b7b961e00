package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
)

// Transaction type values
const (
	TypeReceita = "receita" // Receivable (money owed to the business)
	TypeDespesa = "despesa" // Payable (money owed by the business)
)

// Transaction category values
const (
	CategoryFornecedor  = "fornecedor"  // Linked to a registered supplier
	CategoryCliente     = "cliente"     // Linked to a registered customer
	CategoryImposto     = "imposto"     // Tax, identified by free-text description
	CategoryFuncionario = "funcionario" // Linked to a registered employee
)

// Payment method values
const (
	PaymentPix      = "pix"      // Instant transfer
	PaymentCredito  = "credito"  // Credit card installments
	PaymentDinheiro = "dinheiro" // Cash
	PaymentFaturado = "faturado" // Invoiced terms (30/60/90 days)
)

// Transaction status values
const (
	StatusPendente = "pendente" // Pending
	StatusPago     = "pago"     // Paid
	StatusVencido  = "vencido"  // Overdue
)

// MaxInstallments is the credit card installment limit
const MaxInstallments = 12

// Transaction Model
type Transaction struct {
	ID               uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID           uint            `gorm:"index;not null" json:"user_id"`             // Owning user
	Type             string          `gorm:"not null" json:"type"`                      // receita or despesa
	Category         string          `gorm:"not null" json:"category"`                  // fornecedor, cliente, imposto or funcionario
	Description      string          `json:"description"`                               // Description (required for imposto)
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"` // Transaction amount
	PaymentMethod    string          `gorm:"not null" json:"payment_method"`            // pix, credito, dinheiro or faturado
	Installments     int             `gorm:"default:1" json:"installments"`             // Installment count, 1-12 for credito
	InstallmentTerms string          `json:"installment_terms"`                         // "30", "30,60" or "30,60,90" for faturado
	DueDate          time.Time       `gorm:"type:date;not null" json:"due_date"`        // Primary due date
	DueDate2         *time.Time      `gorm:"type:date" json:"due_date_2"`               // Second due date (60 days term)
	DueDate3         *time.Time      `gorm:"type:date" json:"due_date_3"`               // Third due date (90 days term)
	PaidDate         *time.Time      `gorm:"type:date" json:"paid_date"`                // Stamped when status flips to pago
	Status           string          `gorm:"default:pendente" json:"status"`            // pendente, pago or vencido
	CustomerID       *uint           `json:"customer_id"`                               // Reference for cliente category
	SupplierID       *uint           `json:"supplier_id"`                               // Reference for fornecedor category
	EmployeeID       *uint           `json:"employee_id"`                               // Reference for funcionario category
	ProjectID        *uint           `json:"project_id"`                                // Optional project reference
	Notes            string          `gorm:"type:text" json:"notes"`                    // Free-text notes
	CreatedAt        time.Time       `json:"created_at"`                                // Timestamp of creation
	UpdatedAt        time.Time       `json:"updated_at"`                                // Timestamp of last update
}

// ValidTransactionStatus reports whether s is a known transaction status
func ValidTransactionStatus(s string) bool {
	return s == StatusPendente || s == StatusPago || s == StatusVencido
}

// TermDueDates returns how many due dates an invoiced-terms schedule carries (1-3)
func TermDueDates(terms string) (int, error) {
	switch terms {
	case "30":
		return 1, nil
	case "30,60":
		return 2, nil
	case "30,60,90":
		return 3, nil
	default:
		return 0, fmt.Errorf("unknown installment terms %q", terms)
	}
}

// Normalize validates the enum fields and enforces that the category carries
// exactly the reference it needs, clearing the leftovers of any previous
// category or payment method so a switch cannot leave stale links behind.
func (t *Transaction) Normalize() error {
	if t.Type != TypeReceita && t.Type != TypeDespesa {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Status == "" {
		t.Status = StatusPendente
	}
	if !ValidTransactionStatus(t.Status) {
		return fmt.Errorf("invalid transaction status %q", t.Status)
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}

	// Category rules: each variant requires its own reference and nothing else
	switch t.Category {
	case CategoryFornecedor:
		if t.SupplierID == nil {
			return errors.New("fornecedor transactions require a supplier")
		}
		t.CustomerID, t.EmployeeID = nil, nil
	case CategoryCliente:
		if t.CustomerID == nil {
			return errors.New("cliente transactions require a customer")
		}
		t.SupplierID, t.EmployeeID = nil, nil
	case CategoryFuncionario:
		if t.EmployeeID == nil {
			return errors.New("funcionario transactions require an employee")
		}
		t.CustomerID, t.SupplierID = nil, nil
	case CategoryImposto:
		if strings.TrimSpace(t.Description) == "" {
			return errors.New("imposto transactions require a description")
		}
		t.CustomerID, t.SupplierID, t.EmployeeID = nil, nil, nil
	default:
		return fmt.Errorf("invalid transaction category %q", t.Category)
	}

	// Payment method rules
	switch t.PaymentMethod {
	case PaymentCredito:
		if t.Installments < 1 || t.Installments > MaxInstallments {
			return fmt.Errorf("installments must be between 1 and %d", MaxInstallments)
		}
		t.InstallmentTerms = ""
		t.DueDate2, t.DueDate3 = nil, nil
	case PaymentFaturado:
		n, err := TermDueDates(t.InstallmentTerms)
		if err != nil {
			return err
		}
		t.Installments = 1
		if n < 3 {
			t.DueDate3 = nil
		}
		if n < 2 {
			t.DueDate2 = nil
		}
	case PaymentPix, PaymentDinheiro:
		t.Installments = 1
		t.InstallmentTerms = ""
		t.DueDate2, t.DueDate3 = nil, nil
	default:
		return fmt.Errorf("invalid payment method %q", t.PaymentMethod)
	}
	return nil
}
