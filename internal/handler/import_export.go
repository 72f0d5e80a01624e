package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler dumps a profile's rules and ledger to CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) loadExportData(c *gin.Context, profileID, userID uint) ([]models.BudgetRule, []models.LedgerEntry, bool) {
	var ruleSet []models.BudgetRule
	if err := h.DB.Where("profile_id = ? AND user_id = ?", profileID, userID).
		Order("start_month ASC, created_at ASC").
		Find(&ruleSet).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rules")
		return nil, nil, false
	}

	var entries []models.LedgerEntry
	if err := h.DB.Where("profile_id = ? AND user_id = ?", profileID, userID).
		Order("month ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return nil, nil, false
	}

	return ruleSet, entries, true
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func endMonthLabel(rule *models.BudgetRule) string {
	if rule.EndMonth == nil {
		return ""
	}
	return *rule.EndMonth
}

// ExportCSV writes the ledger with rule labels attached.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
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

	ruleSet, entries, ok := h.loadExportData(c, profileID, user.ID)
	if !ok {
		return
	}
	labelByRule := make(map[uint]string, len(ruleSet))
	for i := range ruleSet {
		labelByRule[ruleSet[i].ID] = ruleSet[i].Label
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.csv\"",
		uuid.New().String()[:8]))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Month", "Rule", "Amount", "Date", "Notes"})
	for i := range entries {
		e := &entries[i]
		writer.Write([]string{
			e.Month,
			labelByRule[e.RuleID],
			formatAmount(e.Amount),
			e.Date,
			e.Notes,
		})
	}
}

// ExportXLSX writes a workbook with one sheet for rule versions and
// one for ledger entries.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
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

	ruleSet, entries, ok := h.loadExportData(c, profileID, user.ID)
	if !ok {
		return
	}
	labelByRule := make(map[uint]string, len(ruleSet))
	for i := range ruleSet {
		labelByRule[ruleSet[i].ID] = ruleSet[i].Label
	}

	f := excelize.NewFile()
	defer f.Close()

	const rulesSheet = "Rules"
	f.SetSheetName("Sheet1", rulesSheet)
	ruleHeader := []interface{}{"Label", "Direction", "Amount", "Frequency", "Category", "Start", "End", "Notes"}
	f.SetSheetRow(rulesSheet, "A1", &ruleHeader)
	for i := range ruleSet {
		r := &ruleSet[i]
		row := []interface{}{
			r.Label, r.Direction, r.Amount, r.Frequency,
			r.CategoryName, r.StartMonth, endMonthLabel(r), r.Notes,
		}
		f.SetSheetRow(rulesSheet, fmt.Sprintf("A%d", i+2), &row)
	}

	const ledgerSheet = "Ledger"
	f.NewSheet(ledgerSheet)
	entryHeader := []interface{}{"Month", "Rule", "Amount", "Date", "Notes"}
	f.SetSheetRow(ledgerSheet, "A1", &entryHeader)
	for i := range entries {
		e := &entries[i]
		row := []interface{}{e.Month, labelByRule[e.RuleID], e.Amount, e.Date, e.Notes}
		f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", i+2), &row)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budget_%s.xlsx\"",
		uuid.New().String()[:8]))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
		return
	}
}
