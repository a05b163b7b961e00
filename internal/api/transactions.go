package api

import (
	"context"                     // Context for Redis operations
	"fmt"                         // Cache key formatting
	"net/http"                    // HTTP status codes
	"obra_system/internal/domain" // Importing domain models
	"obra_system/internal/report" // Paid totals over the filtered set
	"obra_system/internal/utils"  // Redis cache helpers
	"time"                        // Paid date stamping and cache TTL

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// transactionCacheTTL bounds how stale a cached ledger listing can get
const transactionCacheTTL = 60 * time.Second

// TransactionRequest carries the ledger form fields
type TransactionRequest struct {
	Type             string `json:"type" binding:"required"`     // receita or despesa
	Category         string `json:"category" binding:"required"` // fornecedor, cliente, imposto or funcionario
	Description      string `json:"description"`
	Amount           string `json:"amount" binding:"required"`         // Decimal string
	PaymentMethod    string `json:"payment_method" binding:"required"` // pix, credito, dinheiro or faturado
	Installments     int    `json:"installments"`
	InstallmentTerms string `json:"installment_terms"`
	DueDate          string `json:"due_date" binding:"required"` // yyyy-mm-dd
	DueDate2         string `json:"due_date_2"`
	DueDate3         string `json:"due_date_3"`
	Status           string `json:"status"`
	CustomerID       *uint  `json:"customer_id"`
	SupplierID       *uint  `json:"supplier_id"`
	EmployeeID       *uint  `json:"employee_id"`
	ProjectID        *uint  `json:"project_id"`
	Notes            string `json:"notes"`
}

// TransactionListResponse is the ledger listing plus its paid totals
type TransactionListResponse struct {
	Transactions  []domain.Transaction `json:"transactions"`
	ReceitasPagas decimal.Decimal      `json:"receitas_pagas"` // Paid receivables in the filtered set
	DespesasPagas decimal.Decimal      `json:"despesas_pagas"` // Paid payables in the filtered set
}

// applyTransactionRequest maps the request onto a transaction row
func applyTransactionRequest(tx *domain.Transaction, req TransactionRequest) error {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q", req.Amount)
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return fmt.Errorf("invalid due date %q", req.DueDate)
	}
	dueDate2, err := parseDatePtr(req.DueDate2)
	if err != nil {
		return fmt.Errorf("invalid second due date %q", req.DueDate2)
	}
	dueDate3, err := parseDatePtr(req.DueDate3)
	if err != nil {
		return fmt.Errorf("invalid third due date %q", req.DueDate3)
	}
	tx.Type = req.Type
	tx.Category = req.Category
	tx.Description = req.Description
	tx.Amount = amount
	tx.PaymentMethod = req.PaymentMethod
	tx.Installments = req.Installments
	tx.InstallmentTerms = req.InstallmentTerms
	tx.DueDate = dueDate
	tx.DueDate2 = dueDate2
	tx.DueDate3 = dueDate3
	tx.Status = req.Status
	tx.CustomerID = req.CustomerID
	tx.SupplierID = req.SupplierID
	tx.EmployeeID = req.EmployeeID
	tx.ProjectID = req.ProjectID
	tx.Notes = req.Notes
	if tx.PaymentMethod == domain.PaymentCredito && tx.Installments == 0 {
		tx.Installments = 1 // Unset means single installment
	}
	return tx.Normalize()
}

// ListTransactionsHandler returns the user's transactions filtered by month
// and type, newest due date first, with paid totals over the filtered set.
// Listings are cached per filter combination for a short TTL.
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		month := c.Query("month") // Optional yyyy-mm filter on the due date
		txType := c.Query("type") // Optional receita/despesa filter
		if txType != "" && txType != domain.TypeReceita && txType != domain.TypeDespesa {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type filter"})
			return
		}

		ctx := context.Background()
		cacheKey := fmt.Sprintf("transactions:user:%d:%s:%s", userID, month, txType)
		var cached TransactionListResponse
		if hit, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}

		query := db.Where("user_id = ?", userID) // Scope to the user
		if month != "" {
			start, end, err := report.MonthRange(month)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month filter"})
				return
			}
			query = query.Where("due_date >= ? AND due_date <= ?", start, end)
		}
		if txType != "" {
			query = query.Where("type = ?", txType)
		}
		var txs []domain.Transaction // Slice to hold transactions
		if err := query.Order("due_date desc").Find(&txs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		receitas, despesas := report.PaidTotals(txs)
		resp := TransactionListResponse{
			Transactions:  txs,
			ReceitasPagas: receitas,
			DespesasPagas: despesas,
		}
		if err := utils.SetCache(ctx, rdb, cacheKey, resp, transactionCacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache transaction listing")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CreateTransactionHandler inserts a normalized ledger entry
func CreateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type, category, amount, payment method and due date are required"})
			return
		}
		tx := domain.Transaction{UserID: userID}
		if err := applyTransactionRequest(&tx, req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Create(&tx).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		invalidateFinanceCaches(rdb, userID) // Ledger and dashboard changed
		c.JSON(http.StatusCreated, gin.H{"transaction": tx})
	}
}

// UpdateTransactionHandler overwrites a ledger entry owned by the user
func UpdateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var tx domain.Transaction // Fetch the row, owner-checked
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&tx).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type, category, amount, payment method and due date are required"})
			return
		}
		if err := applyTransactionRequest(&tx, req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if tx.Status != domain.StatusPago {
			tx.PaidDate = nil // Only paid entries carry a paid date
		}
		if err := db.Save(&tx).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		invalidateFinanceCaches(rdb, userID) // Ledger and dashboard changed
		c.JSON(http.StatusOK, gin.H{"transaction": tx})
	}
}

// ToggleTransactionHandler flips a transaction between pendente and pago,
// stamping or clearing the paid date
func ToggleTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var tx domain.Transaction // Fetch the row, owner-checked
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&tx).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		if tx.Status == domain.StatusPago {
			tx.Status = domain.StatusPendente
			tx.PaidDate = nil // Back to pending, drop the paid date
		} else {
			now := time.Now()
			tx.Status = domain.StatusPago
			tx.PaidDate = &now // Stamp today as the payment date
		}
		if err := db.Save(&tx).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"transaction_id": tx.ID,
			"status":         tx.Status,
		}).Info("Transaction status toggled")
		invalidateFinanceCaches(rdb, userID) // Ledger and dashboard changed
		c.JSON(http.StatusOK, gin.H{"transaction": tx})
	}
}

// DeleteTransactionHandler hard-deletes a ledger entry owned by the user
func DeleteTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Transaction{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"transaction_id": c.Param("id"),
		}).Info("Transaction deleted")
		invalidateFinanceCaches(rdb, userID) // Ledger and dashboard changed
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}
