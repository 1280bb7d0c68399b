package controllers

import (
	"net/http"
	"strings"
	"time"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB     *gorm.DB
	Secret []byte
}

func NewAuthController(db *gorm.DB, secret []byte) *AuthController {
	return &AuthController{DB: db, Secret: secret}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	var owner models.Owner
	if err := ac.DB.Where("username = ?", username).First(&owner).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	claims := middleware.OwnerClaims{
		OwnerID: owner.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   owner.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ac.Secret)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"owner": gin.H{"id": owner.ID, "fullName": owner.FullName, "username": owner.Username},
	})
}
