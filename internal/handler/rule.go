package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/rules"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RuleHandler serves budget rule CRUD. Edits and deletes are
// month-aware: the ?month= query parameter is the month the user is
// currently viewing and decides whether an edit corrects the current
// version in place or splits off a new one.
type RuleHandler struct {
	DB *gorm.DB
}

func NewRuleHandler(db *gorm.DB) *RuleHandler {
	return &RuleHandler{DB: db}
}

type createRuleReq struct {
	Label         string  `json:"label" binding:"required,max=64"`
	Amount        float64 `json:"amount" binding:"required"`
	Direction     string  `json:"direction" binding:"required,oneof=income expense"`
	FromAccountID *uint   `json:"from_account_id"`
	ToAccountID   *uint   `json:"to_account_id"`
	CategoryName  string  `json:"category" binding:"max=64"`
	CategoryKind  string  `json:"category_kind" binding:"omitempty,oneof=bill spending"`
	Notes         string  `json:"notes"`
	Recurring     bool    `json:"recurring"`
	Frequency     string  `json:"frequency"`
	AnchorDate    string  `json:"anchor_date"`
	StartMonth    string  `json:"start_month" binding:"required"`
}

func (h *RuleHandler) CreateRule(c *gin.Context) {
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

	var req createRuleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}
	if err := util.ValidateMonth(req.StartMonth); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start_month must be YYYY-MM")
		return
	}
	if req.Recurring {
		if err := util.ValidateFrequency(req.Frequency); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid frequency")
			return
		}
	}
	if req.AnchorDate != "" {
		if err := util.ValidateDate(req.AnchorDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "anchor_date must be YYYY-MM-DD")
			return
		}
	}

	rule := models.BudgetRule{
		ProfileID:     profileID,
		UserID:        user.ID,
		Label:         strings.TrimSpace(req.Label),
		Amount:        req.Amount,
		Direction:     req.Direction,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		CategoryName:  strings.TrimSpace(req.CategoryName),
		CategoryKind:  req.CategoryKind,
		Notes:         req.Notes,
		Recurring:     req.Recurring,
		Frequency:     req.Frequency,
		AnchorDate:    req.AnchorDate,
		StartMonth:    req.StartMonth,
	}

	// a one-time rule only exists in its start month: close it there so
	// active-month queries never surface it anywhere else
	if !rule.Recurring {
		end := rule.StartMonth
		rule.EndMonth = &end
	}

	if err := h.DB.Create(&rule).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create rule")
		return
	}

	util.Success(c, util.Response{"rule": rule})
}

// ListRules returns the rule versions active in the queried month plus
// the month's approximate allocation totals.
func (h *RuleHandler) ListRules(c *gin.Context) {
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
	ruleSet, err := manager.RulesForMonth(month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list rules")
		return
	}
	income, err := manager.TotalIncome(month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to aggregate rules")
		return
	}
	expenses, err := manager.TotalExpenses(month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to aggregate rules")
		return
	}
	left, err := manager.AmountLeftToAllocate(month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to aggregate rules")
		return
	}

	util.Success(c, util.Response{
		"month":            month,
		"rules":            ruleSet,
		"total_income":     income,
		"total_expenses":   expenses,
		"left_to_allocate": left,
	})
}

type updateRuleReq struct {
	Label         *string  `json:"label"`
	Amount        *float64 `json:"amount"`
	Direction     *string  `json:"direction"`
	FromAccountID *uint    `json:"from_account_id"`
	ToAccountID   *uint    `json:"to_account_id"`
	CategoryName  *string  `json:"category"`
	CategoryKind  *string  `json:"category_kind"`
	Notes         *string  `json:"notes"`
	Recurring     *bool    `json:"recurring"`
	Frequency     *string  `json:"frequency"`
	AnchorDate    *string  `json:"anchor_date"`
}

// UpdateRule applies a month-aware edit. Editing in the rule's start
// month corrects it in place; any other view month closes the current
// version and opens a successor from the viewed month onward, keeping
// past months historically accurate.
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	ruleID, ok := idParam(c, "ruleID")
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	var req updateRuleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if req.Amount != nil {
		if err := util.ValidateAmount(*req.Amount); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
			return
		}
	}
	if req.Frequency != nil {
		if err := util.ValidateFrequency(*req.Frequency); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid frequency")
			return
		}
	}

	updates := rules.RuleUpdates{
		Label:         req.Label,
		Amount:        req.Amount,
		Direction:     req.Direction,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		CategoryName:  req.CategoryName,
		CategoryKind:  req.CategoryKind,
		Notes:         req.Notes,
		Recurring:     req.Recurring,
		Frequency:     req.Frequency,
		AnchorDate:    req.AnchorDate,
	}

	rule, err := rules.UpsertRule(h.DB, ruleID, updates, month, user.ID)
	if err != nil {
		if errors.Is(err, rules.ErrRuleNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "rule not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update rule")
		}
		return
	}

	util.Success(c, util.Response{"rule": rule})
}

// DeleteRule stops a rule from the viewed month onward. History before
// that month is preserved.
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	ruleID, ok := idParam(c, "ruleID")
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	if err := rules.SoftDeleteRule(h.DB, ruleID, month, user.ID); err != nil {
		if errors.Is(err, rules.ErrRuleNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "rule not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete rule")
		}
		return
	}

	util.Success(c, util.Response{"message": "rule stopped"})
}

// PurgeRule physically removes a rule version and its ledger history.
func (h *RuleHandler) PurgeRule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	ruleID, ok := idParam(c, "ruleID")
	if !ok {
		return
	}

	if err := rules.HardDeleteRule(h.DB, ruleID, user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to purge rule")
		return
	}

	util.Success(c, util.Response{"message": "rule purged"})
}
