package handler

import (
	"net/http"
	"strings"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves the per-user name→kind classification lookup.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name string `json:"name" binding:"required,max=64"`
	Kind string `json:"kind" binding:"required,oneof=bill spending"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	category := models.Category{
		UserID: user.ID,
		Name:   strings.TrimSpace(req.Name),
		Kind:   req.Kind,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create category")
		return
	}

	util.Success(c, util.Response{"category": category})
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var categories []models.Category
	if err := h.DB.Where("user_id = ?", user.ID).Order("name ASC").
		Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list categories")
		return
	}

	util.Success(c, util.Response{"categories": categories})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		}
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Kind = req.Kind
	if err := h.DB.Save(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update category")
		return
	}

	util.Success(c, util.Response{"category": category})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Category{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete category")
		return
	}

	util.Success(c, util.Response{"message": "category deleted"})
}
