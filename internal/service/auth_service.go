package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

const bcryptCost = 12

type userStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// AuthService owns password hashing, token issue and token verification.
// Tokens are stateless HS256 JWTs with a fixed expiry window; there is no
// issued-token store and no revocation.
type AuthService struct {
	users     userStore
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(jwtSecret string, accessTTL time.Duration, users userStore) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	password := req.Password

	if username == "" {
		return model.AuthUser{}, apierror.Validation("username is required", "username")
	}
	if email == "" || !strings.Contains(email, "@") {
		return model.AuthUser{}, apierror.Validation("a valid email is required", "email")
	}
	if len(password) < 6 {
		return model.AuthUser{}, apierror.Validation("password must be at least 6 characters", "password")
	}

	role := model.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return model.AuthUser{}, apierror.Validation("role must be admin or user", "role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		Username:       username,
		Email:          email,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		HashedPassword: string(hash),
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return model.AuthUser{}, err
	}

	return user.Public(), nil
}

// Login verifies the credentials and issues an access token. Every failure
// path returns the same generic unauthorized error so callers cannot probe
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return model.TokenResponse{}, apierror.Unauthorized("invalid credentials")
	}

	if !user.IsActive {
		return model.TokenResponse{}, apierror.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return model.TokenResponse{}, apierror.Unauthorized("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        user.Public(),
	}, nil
}

// ValidateToken checks the signature, signing method and expiry, and returns
// the embedded principal. Any defect maps to the same unauthorized error.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.Unauthorized("invalid token signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthorized("invalid token")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("invalid token claims")
	}

	claims := &model.AuthClaims{}
	claims.Username, _ = claimsMap["sub"].(string)
	if uid, ok := claimsMap["uid"].(float64); ok {
		claims.UserID = int64(uid)
	}
	if role, ok := claimsMap["role"].(string); ok {
		claims.Role = model.Role(role)
	}

	if claims.Username == "" || claims.UserID == 0 || !claims.Role.Valid() {
		return nil, apierror.Unauthorized("invalid token subject")
	}

	return claims, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword string, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return apierror.Unauthorized("current password is incorrect")
	}

	if len(newPassword) < 6 {
		return apierror.Validation("password must be at least 6 characters", "new_password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Username,
		"uid":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
