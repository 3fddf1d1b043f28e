package handlers

import (
	"github.com/Julie983186/DynamicPricing/config"
	"github.com/Julie983186/DynamicPricing/models"
	"github.com/Julie983186/DynamicPricing/repositories"
	"github.com/Julie983186/DynamicPricing/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Repo repositories.UserRepository
	cfg  config.AuthConfig
}

func NewAuthHandler(repo repositories.UserRepository, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{Repo: repo, cfg: cfg}
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "註冊失敗", "error": "参数校验失败"})
		return
	}

	// 密码哈希
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	user := models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.Repo.Create(&user); err != nil {
		c.JSON(500, gin.H{"message": "註冊失敗", "error": "Email 已存在或注册失败"})
		return
	}

	c.JSON(200, gin.H{"message": "註冊成功"})
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "输入不合法"})
		return
	}

	user, err := h.Repo.FindByEmail(req.Email)
	if err != nil {
		c.JSON(401, gin.H{"message": "帳號或密碼錯誤"})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(401, gin.H{"message": "帳號或密碼錯誤"})
		return
	}

	// 签发 Token
	token, _ := utils.GenerateToken(user.ID, h.cfg)
	c.JSON(200, gin.H{
		"message": "登入成功",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"phone": user.Phone,
			"email": user.Email,
		},
		"token": token,
	})
}
