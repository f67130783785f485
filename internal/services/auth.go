package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prepwise-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GoogleClaims is the verified identity triple handed back by the
// external identity provider.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier validates an external identity token and returns its
// verified claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	verifier  TokenVerifier
}

func NewAuthService(db *gorm.DB, jwtSecret string, verifier TokenVerifier) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), verifier: verifier}
}

func (s *AuthService) Register(username, email, fullName, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("username %w", ErrDuplicate)
	}
	if email != "" {
		if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
			return nil, fmt.Errorf("email %w", ErrDuplicate)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hashStr := string(hash)
	user := models.User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: &hashStr,
	}
	if email != "" {
		user.Email = &email
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(username, password string) (string, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken(user.Username)
}

// GoogleLogin exchanges a verified identity token for a session token,
// provisioning a user on first sight of the subject.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("google token verification: %w", err)
	}
	if claims.Email == "" {
		return "", errors.New("google token does not contain email")
	}

	var user models.User
	err = s.db.Where("google_sub = ? OR email = ?", claims.Subject, claims.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username:  s.deriveUsername(claims.Email),
			FullName:  claims.Name,
			Email:     &claims.Email,
			GoogleSub: &claims.Subject,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	} else if user.GoogleSub == nil {
		user.GoogleSub = &claims.Subject
		if err := s.db.Save(&user).Error; err != nil {
			return "", err
		}
	}

	return s.GenerateToken(user.Username)
}

// deriveUsername takes the email local-part and resolves collisions
// with a numeric suffix: name, name1, name2, ...
func (s *AuthService) deriveUsername(email string) string {
	base := strings.SplitN(email, "@", 2)[0]
	candidate := base
	counter := 1
	for {
		var existing models.User
		if err := s.db.Where("username = ?", candidate).First(&existing).Error; err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
		counter++
	}
}

func (s *AuthService) GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken returns the user the token was issued to.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, errors.New("invalid subject in token")
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.New("unknown user")
	}
	return &user, nil
}

// UsernameExists reports whether a username is registered.
func (s *AuthService) UsernameExists(username string) bool {
	var user models.User
	return s.db.Where("username = ?", username).First(&user).Error == nil
}
