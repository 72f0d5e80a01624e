package handler

import (
	"net/http"
	"strings"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler serves budget profile CRUD and duplication.
type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

type profileReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "profile name required")
		return
	}

	profile := models.Profile{UserID: user.ID, Name: strings.TrimSpace(req.Name)}
	if err := h.DB.Create(&profile).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create profile")
		return
	}

	util.Success(c, util.Response{"profile": profile})
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var profiles []models.Profile
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&profiles).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list profiles")
		return
	}

	util.Success(c, util.Response{"profiles": profiles})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	profile, ok := findOwnedProfile(c, h.DB, id, user.ID)
	if !ok {
		return
	}

	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "profile name required")
		return
	}

	profile.Name = strings.TrimSpace(req.Name)
	if err := h.DB.Save(profile).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update profile")
		return
	}

	util.Success(c, util.Response{"profile": profile})
}

// DeleteProfile removes the profile and everything it owns: ledger
// entries, rule versions, accounts. Full cleanup, so rules go through
// the hard-delete path.
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	profile, ok := findOwnedProfile(c, h.DB, id, user.ID)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ? AND user_id = ?", profile.ID, user.ID).
			Delete(&models.LedgerEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ? AND user_id = ?", profile.ID, user.ID).
			Delete(&models.BudgetRule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).
			Delete(&models.Account{}).Error; err != nil {
			return err
		}
		return tx.Delete(profile).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete profile")
		return
	}

	util.Success(c, util.Response{"message": "profile deleted"})
}

// DuplicateProfile clones a profile with its accounts and rule
// versions (ledger history stays behind). The copy happens in one
// transaction: any failure rolls the half-built duplicate back, so a
// reader never sees a profile with only part of its rule chains.
func (h *ProfileHandler) DuplicateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	source, ok := findOwnedProfile(c, h.DB, id, user.ID)
	if !ok {
		return
	}

	var duplicate models.Profile
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		duplicate = models.Profile{UserID: user.ID, Name: source.Name + " (copy)"}
		if err := tx.Create(&duplicate).Error; err != nil {
			return err
		}

		var accounts []models.Account
		if err := tx.Where("profile_id = ?", source.ID).Find(&accounts).Error; err != nil {
			return err
		}
		accountIDMap := make(map[uint]uint, len(accounts))
		for i := range accounts {
			oldID := accounts[i].ID
			account := accounts[i]
			account.ID = 0
			account.ProfileID = duplicate.ID
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
			accountIDMap[oldID] = account.ID
		}

		var ruleSet []models.BudgetRule
		if err := tx.Where("profile_id = ? AND user_id = ?", source.ID, user.ID).
			Find(&ruleSet).Error; err != nil {
			return err
		}
		for i := range ruleSet {
			rule := ruleSet[i]
			rule.ID = 0
			rule.ProfileID = duplicate.ID
			if rule.FromAccountID != nil {
				if mapped, ok := accountIDMap[*rule.FromAccountID]; ok {
					rule.FromAccountID = &mapped
				} else {
					rule.FromAccountID = nil
				}
			}
			if rule.ToAccountID != nil {
				if mapped, ok := accountIDMap[*rule.ToAccountID]; ok {
					rule.ToAccountID = &mapped
				} else {
					rule.ToAccountID = nil
				}
			}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to duplicate profile")
		return
	}

	util.Success(c, util.Response{"profile": duplicate})
}
