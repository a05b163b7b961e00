package api

import (
	"context"                     // Context for Redis operations
	"fmt"                         // Cache key formatting
	"net/http"                    // HTTP status codes
	"obra_system/internal/domain" // Importing domain models
	"obra_system/internal/report" // Aggregation over ledger rows
	"obra_system/internal/utils"  // Redis cache helpers
	"time"                        // Period defaults and cache TTL

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// dashboardCacheTTL bounds how stale a cached dashboard can get
const dashboardCacheTTL = 60 * time.Second

// topSupplierLimit caps the supplier expense ranking
const topSupplierLimit = 8

// DashboardResponse aggregates everything the overview screen shows
type DashboardResponse struct {
	ActiveProjects      int                      `json:"active_projects"`    // Projects not yet concluded
	CompletedProjects   int                      `json:"completed_projects"` // Concluded projects
	MonthlyProfit       decimal.Decimal          `json:"monthly_profit"`     // Paid receitas minus paid despesas in the month
	CashFlow            []report.CashFlowPoint   `json:"cash_flow"`          // 12-month series for the selected year
	ProjectDistribution []report.StatusCount     `json:"project_distribution"`
	TopSupplierExpenses []report.SupplierExpense `json:"top_supplier_expenses"`
}

// DashboardHandler builds the overview aggregation for one user and period,
// served from Redis when a fresh copy exists
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		now := time.Now()
		year := c.DefaultQuery("year", now.Format("2006"))      // Selected year
		month := c.DefaultQuery("month", now.Format("2006-01")) // Selected month

		ctx := context.Background()
		cacheKey := fmt.Sprintf("dashboard:user:%d:%s:%s", userID, year, month)
		var cached DashboardResponse
		if hit, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}

		yearStart, yearEnd, err := report.YearRange(year)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		monthStart, monthEnd, err := report.MonthRange(month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}

		var projects []domain.Project // All projects, counted by status
		if err := db.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
			return
		}
		active, completed := 0, 0
		for _, p := range projects {
			if p.Status == domain.ProjectStatusConcluida {
				completed++
			} else {
				active++
			}
		}

		var yearTxs []domain.Transaction // Transactions due inside the year
		if err := db.Where("user_id = ? AND due_date >= ? AND due_date <= ?", userID, yearStart, yearEnd).
			Find(&yearTxs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		var monthTxs []domain.Transaction // Transactions due inside the month
		if err := db.Where("user_id = ? AND due_date >= ? AND due_date <= ?", userID, monthStart, monthEnd).
			Find(&monthTxs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		receitas, despesas := report.PaidTotals(monthTxs)

		resp := DashboardResponse{
			ActiveProjects:      active,
			CompletedProjects:   completed,
			MonthlyProfit:       receitas.Sub(despesas),
			CashFlow:            report.CashFlow(yearTxs),
			ProjectDistribution: report.ProjectDistribution(projects),
			TopSupplierExpenses: report.TopSupplierExpenses(yearTxs, topSupplierLimit),
		}
		if err := utils.SetCache(ctx, rdb, cacheKey, resp, dashboardCacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache dashboard")
		}
		c.JSON(http.StatusOK, resp)
	}
}
