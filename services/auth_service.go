package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"bookstay/config"
	"bookstay/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

var secretKey = []byte(os.Getenv("JWT_SECRET"))

// GenerateToken tạo access token cho user
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateUser tạo user mới với mật khẩu đã băm
func CreateUser(input models.User) (models.User, error) {
	if input.Email == "" || input.Password == "" || input.PhoneNumber == "" {
		return models.User{}, errors.New("không được để trống email, password, phone")
	}

	existingEmail, err := GetUserByEmail(input.Email)
	if err == nil {
		return models.User{}, fmt.Errorf("email %s đã được sử dụng", existingEmail.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	input.Password = string(hashed)

	if err := config.DB.Create(&input).Error; err != nil {
		return models.User{}, err
	}
	return input, nil
}

// CreateGoogleUser tạo user từ tài khoản Google đã xác thực
func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	existingEmail, err := GetUserByEmail(email)
	if err == nil {
		return models.User{}, fmt.Errorf("email %s đã được sử dụng", existingEmail.Email)
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   "",
		Avatar:     avatar,
		IsVerified: true,
		Role:       0,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return user, err
	}
	return user, nil
}

// VerifyGoogleIDToken xác thực ID token từ Google
func VerifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(context.Background(), tokenId, clientID)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
