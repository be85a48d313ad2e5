package controllers

import (
	"context"
	"time"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/psql/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	userDAO  *dao.UserDAO
	auditDAO *dao.AuditLogDAO
	cfg      config.Config
}

func NewAuthController(userDAO *dao.UserDAO, auditDAO *dao.AuditLogDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO:  userDAO,
		auditDAO: auditDAO,
		cfg:      cfg,
	}
}

// Login verifies credentials against the stored bcrypt hash, records a
// LOGIN audit entry and returns a signed session token.
func (c *AuthController) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := c.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"vin":     user.VIN,
		"exp":     time.Now().Add(c.cfg.SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.JWTSecret))
	if err != nil {
		return "", nil, err
	}

	if err := c.auditDAO.Append(ctx, user.Role, models.ActionLogin, user.VIN); err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (c *AuthController) Logout(ctx context.Context, a middlewares.AuthContext) error {
	return c.auditDAO.Append(ctx, a.Role, models.ActionLogout, a.VIN)
}
