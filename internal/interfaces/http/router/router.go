package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockledger/backend/internal/interfaces/http/handler"
	"github.com/stockledger/backend/internal/interfaces/http/middleware"
)

// Dependencies holds everything the router needs
type Dependencies struct {
	Logger         *zap.Logger
	PostingHandler *handler.PostingHandler
	ReportHandler  *handler.ReportHandler
	TrustedProxies []string
}

// New builds the gin engine with all routes and middleware wired
func New(deps Dependencies) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logging(deps.Logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Tenant())
	{
		postings := api.Group("/postings")
		{
			postings.POST("/goods-receipts", deps.PostingHandler.GoodsReceipt)
			postings.POST("/delivery-notes", deps.PostingHandler.DeliveryNote)
			postings.POST("/transfers", deps.PostingHandler.Transfer)
			postings.POST("/adjustments", deps.PostingHandler.Adjustment)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/trial-balance", deps.ReportHandler.TrialBalance)
			reports.GET("/general-ledger/:accountID", deps.ReportHandler.GeneralLedger)
			reports.GET("/customer-statement/:customerID", deps.ReportHandler.CustomerStatement)
			reports.GET("/income-statement", deps.ReportHandler.IncomeStatement)
			reports.GET("/valuation-summary", deps.ReportHandler.ValuationSummary)
		}
	}

	return engine, nil
}
