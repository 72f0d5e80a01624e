package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/engine"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler serves account CRUD within a profile.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type accountReq struct {
	Name            string  `json:"name" binding:"required,max=64"`
	Type            string  `json:"type" binding:"required"`
	StartingBalance float64 `json:"starting_balance"`
}

// normalizeBalance keeps the liability-negative invariant: balances on
// loan/credit accounts are stored negative regardless of input sign.
func normalizeBalance(accountType string, balance float64) float64 {
	if !models.IsAssetType(accountType) && balance > 0 {
		return -balance
	}
	return balance
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
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

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAccountType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid account type")
		return
	}

	account := models.Account{
		ProfileID:       profileID,
		Name:            strings.TrimSpace(req.Name),
		Type:            req.Type,
		StartingBalance: engine.RoundCurrency(normalizeBalance(req.Type, req.StartingBalance)),
	}
	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create account")
		return
	}

	util.Success(c, util.Response{"account": account})
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
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

	var accounts []models.Account
	if err := h.DB.Where("profile_id = ?", profileID).Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list accounts")
		return
	}

	util.Success(c, util.Response{"accounts": accounts})
}

// findOwnedAccount loads an account and checks the profile chain back
// to the caller.
func (h *AccountHandler) findOwnedAccount(c *gin.Context, accountID, userID uint) (*models.Account, bool) {
	var account models.Account
	if err := h.DB.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load account")
		}
		return nil, false
	}
	if _, ok := findOwnedProfile(c, h.DB, account.ProfileID, userID); !ok {
		return nil, false
	}
	return &account, true
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	account, ok := h.findOwnedAccount(c, accountID, user.ID)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAccountType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid account type")
		return
	}

	account.Name = strings.TrimSpace(req.Name)
	account.Type = req.Type
	account.StartingBalance = engine.RoundCurrency(normalizeBalance(req.Type, req.StartingBalance))
	if err := h.DB.Save(account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update account")
		return
	}

	util.Success(c, util.Response{"account": account})
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	account, ok := h.findOwnedAccount(c, accountID, user.ID)
	if !ok {
		return
	}

	// detach rules pointing at the account, then drop it
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BudgetRule{}).
			Where("from_account_id = ?", account.ID).
			Update("from_account_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.BudgetRule{}).
			Where("to_account_id = ?", account.ID).
			Update("to_account_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(account).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete account")
		return
	}

	util.Success(c, util.Response{"message": "account deleted"})
}
