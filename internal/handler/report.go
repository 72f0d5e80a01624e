package handler

import (
	"net/http"
	"strconv"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/engine"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/rules"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler serves the read-only computed views: balance
// projections, month summaries and the monthly bills/spending state.
type ReportHandler struct {
	DB            *gorm.DB
	DefaultMonths int
}

func NewReportHandler(db *gorm.DB, defaultMonths int) *ReportHandler {
	if defaultMonths <= 0 {
		defaultMonths = 12
	}
	return &ReportHandler{DB: db, DefaultMonths: defaultMonths}
}

// GetProjections walks every account in the profile forward N months
// and reports the per-account trajectories plus the net-worth rollups.
func (h *ReportHandler) GetProjections(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, ok := findOwnedProfile(c, h.DB, profileID, user.ID); !ok {
		return
	}
	startMonth, ok := monthQuery(c)
	if !ok {
		return
	}

	months := h.DefaultMonths
	if s := c.Query("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 120 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "months must be 1-120")
			return
		}
		months = n
	}

	var accounts []models.Account
	if err := h.DB.Where("profile_id = ?", profileID).Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load accounts")
		return
	}

	// all versions; the engine re-checks activity month by month so
	// versions starting or stopping inside the horizon are honored
	var ruleSet []models.BudgetRule
	if err := h.DB.Where("profile_id = ? AND user_id = ?", profileID, user.ID).
		Find(&ruleSet).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rules")
		return
	}

	projections := engine.CalculateAllProjections(accounts, ruleSet, months, startMonth)

	util.Success(c, util.Response{
		"start_month":           startMonth,
		"months":                months,
		"projections":           projections,
		"projected_assets":      engine.ProjectedAssets(accounts, projections),
		"projected_liabilities": engine.ProjectedLiabilities(accounts, projections),
		"projected_net_worth":   engine.ProjectedNetWorth(accounts, projections),
	})
}

// GetMonthSummary reports the calendar-exact totals for one month.
func (h *ReportHandler) GetMonthSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, ok := findOwnedProfile(c, h.DB, profileID, user.ID); !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	manager := rules.NewManager(h.DB, profileID, user.ID)
	summary, err := manager.MonthSummary(month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute summary")
		return
	}

	util.Success(c, util.Response{
		"month":   month,
		"summary": summary,
	})
}

// GetMonthlyState returns the bills/spending breakdown for one month.
func (h *ReportHandler) GetMonthlyState(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, ok := findOwnedProfile(c, h.DB, profileID, user.ID); !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	state, err := rules.ResolveMonthlyState(h.DB, profileID, month, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to resolve month")
		return
	}

	util.Success(c, util.Response{"state": state})
}
