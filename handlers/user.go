package handlers

import (
	"github.com/Julie983186/DynamicPricing/models"
	"github.com/Julie983186/DynamicPricing/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	Repo repositories.UserRepository
}

func NewUserHandler(repo repositories.UserRepository) *UserHandler {
	return &UserHandler{Repo: repo}
}

// GetUser 取会员资料，只能看自己的
func (h *UserHandler) GetUser(c *gin.Context) {
	currentID := c.MustGet("current_user_id").(uuid.UUID)
	if currentID.String() != c.Param("id") {
		c.JSON(403, gin.H{"message": "沒有權限查看此資料"})
		return
	}

	user, err := h.Repo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"message": "找不到該會員"})
		return
	}

	c.JSON(200, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"phone": user.Phone,
		"email": user.Email,
	})
}

// UpdateUser 更新会员资料，只能改自己的
func (h *UserHandler) UpdateUser(c *gin.Context) {
	currentID := c.MustGet("current_user_id").(uuid.UUID)
	if currentID.String() != c.Param("id") {
		c.JSON(403, gin.H{"message": "沒有權限更新此資料"})
		return
	}

	var req models.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误"})
		return
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		fields["password"] = string(hashed)
	}

	if len(fields) == 0 {
		c.JSON(400, gin.H{"message": "沒有可更新的欄位"})
		return
	}

	if err := h.Repo.UpdateFields(c.Param("id"), fields); err != nil {
		c.JSON(500, gin.H{"message": "資料更新失敗", "error": err.Error()})
		return
	}

	user, err := h.Repo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"message": "更新成功",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"phone": user.Phone,
			"email": user.Email,
		},
	})
}
