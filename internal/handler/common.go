package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUser pulls the authenticated user out of the gin context. On
// failure it writes the error response itself and returns ok=false.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// findOwnedProfile loads a profile scoped to its owner.
func findOwnedProfile(c *gin.Context, db *gorm.DB, profileID, userID uint) (*models.Profile, bool) {
	var profile models.Profile
	err := db.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "profile not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load profile")
		}
		return nil, false
	}
	return &profile, true
}

// monthQuery reads a YYYY-MM month from the query string, defaulting
// to the current calendar month.
func monthQuery(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if month == "" {
		month = util.CurrentMonth()
	}
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
		return "", false
	}
	return month, true
}
