package router

import (
	"github.com/JeremyMColegrove/budgetr-sub000/internal/config"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/handler"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.GET("/me", handler.GetMe)

	profileHandler := handler.NewProfileHandler(db)
	protected.POST("/profiles", profileHandler.CreateProfile)
	protected.GET("/profiles", profileHandler.ListProfiles)
	protected.PUT("/profiles/:id", profileHandler.UpdateProfile)
	protected.DELETE("/profiles/:id", profileHandler.DeleteProfile)
	protected.POST("/profiles/:id/duplicate", profileHandler.DuplicateProfile)

	accountHandler := handler.NewAccountHandler(db)
	protected.POST("/profiles/:id/accounts", accountHandler.CreateAccount)
	protected.GET("/profiles/:id/accounts", accountHandler.ListAccounts)
	protected.PUT("/accounts/:accountID", accountHandler.UpdateAccount)
	protected.DELETE("/accounts/:accountID", accountHandler.DeleteAccount)

	ruleHandler := handler.NewRuleHandler(db)
	protected.POST("/profiles/:id/rules", ruleHandler.CreateRule)
	protected.GET("/profiles/:id/rules", ruleHandler.ListRules)
	protected.PUT("/rules/:ruleID", ruleHandler.UpdateRule)
	protected.DELETE("/rules/:ruleID", ruleHandler.DeleteRule)
	protected.DELETE("/rules/:ruleID/purge", ruleHandler.PurgeRule)

	ledgerHandler := handler.NewLedgerHandler(db)
	protected.POST("/profiles/:id/ledger", ledgerHandler.CreateEntry)
	protected.GET("/profiles/:id/ledger", ledgerHandler.ListEntries)
	protected.DELETE("/ledger/:entryID", ledgerHandler.DeleteEntry)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	reportHandler := handler.NewReportHandler(db, cfg.App.ProjectionMonths)
	protected.GET("/profiles/:id/projections", reportHandler.GetProjections)
	protected.GET("/profiles/:id/summary", reportHandler.GetMonthSummary)
	protected.GET("/profiles/:id/state", reportHandler.GetMonthlyState)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/profiles/:id/export/csv", exportHandler.ExportCSV)
	protected.GET("/profiles/:id/export/xlsx", exportHandler.ExportXLSX)

	return r
}
