package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IssueUserToken creates a signed JWT for a user session
func IssueUserToken(userID uint, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// Register creates a new user account. Joining with a referral code links the
// new account to the referrer for the affiliate program.
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req struct {
		Username     string `json:"username" binding:"required"`
		Email        string `json:"email" binding:"required"`
		Password     string `json:"password" binding:"required"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Phone        string `json:"phone"`
		ReferralCode string `json:"referral_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !utils.ValidateUsername(req.Username) {
		utils.ValidationError(c, "Username must be 3-20 characters, letters, digits and underscore only", nil)
		return
	}
	if !utils.ValidateEmail(req.Email) {
		utils.ValidationError(c, "Invalid email format", nil)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		Password:     string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		ReferralCode: strings.ToUpper(uuid.New().String()[:8]),
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if req.ReferralCode == "" {
			return nil
		}
		var referrer models.User
		if err := tx.Where("referral_code = ?", strings.ToUpper(req.ReferralCode)).First(&referrer).Error; err != nil {
			utils.LogInfo("Unknown referral code %s ignored at registration", req.ReferralCode)
			return nil
		}
		return tx.Create(&models.Referral{
			ReferrerID:     referrer.ID,
			ReferredUserID: user.ID,
			Code:           referrer.ReferralCode,
		}).Error
	})
	if err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}
	utils.LogInfo("Created user ID: %d", user.ID)

	utils.Created(c, "Registration successful", gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"referral_code": user.ReferralCode,
		},
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if user.IsBlocked {
		utils.Forbidden(c, "Your account has been blocked")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Failed to load config: %v", err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}
	tokenString, err := IssueUserToken(user.ID, cfg.JWTSecret)
	if err != nil {
		utils.LogError("Failed to sign token: %v", err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())
	utils.LogInfo("User %d logged in", user.ID)

	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}
