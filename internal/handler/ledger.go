package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LedgerHandler serves actual postings: marking bills paid and logging
// transactions against spending rules.
type LedgerHandler struct {
	DB *gorm.DB
}

func NewLedgerHandler(db *gorm.DB) *LedgerHandler {
	return &LedgerHandler{DB: db}
}

type createEntryReq struct {
	RuleID uint    `json:"rule_id" binding:"required"`
	Month  string  `json:"month" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes" binding:"max=255"`
}

func (h *LedgerHandler) CreateEntry(c *gin.Context) {
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

	var req createEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateMonth(req.Month); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	} else if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return
	}

	// the posting must target a rule version in the caller's scope
	var rule models.BudgetRule
	err := h.DB.Where("id = ? AND profile_id = ? AND user_id = ?", req.RuleID, profileID, user.ID).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "rule not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rule")
		}
		return
	}

	entry := models.LedgerEntry{
		ProfileID: profileID,
		UserID:    user.ID,
		Month:     req.Month,
		RuleID:    rule.ID,
		Amount:    req.Amount,
		Date:      req.Date,
		Notes:     req.Notes,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save entry")
		return
	}

	util.Success(c, util.Response{"entry": entry})
}

func (h *LedgerHandler) ListEntries(c *gin.Context) {
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

	var entries []models.LedgerEntry
	err := h.DB.Where("profile_id = ? AND user_id = ? AND month = ?", profileID, user.ID, month).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list entries")
		return
	}

	util.Success(c, util.Response{
		"month":   month,
		"entries": entries,
	})
}

func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c, "entryID")
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", entryID, user.ID).
		Delete(&models.LedgerEntry{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete entry")
		return
	}

	util.Success(c, util.Response{"message": "entry deleted"})
}
