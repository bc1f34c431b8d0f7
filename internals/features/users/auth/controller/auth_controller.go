// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"netbill_backend/internals/features/users/auth/dto"
	"netbill_backend/internals/features/users/auth/model"
	"netbill_backend/internals/features/users/auth/service"
	helper "netbill_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* ======================= LOGIN ======================= */

// Login handles POST /api/auth/login.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user model.UserModel
	err := ctrl.DB.First(&user, "user_email = ?", strings.ToLower(strings.TrimSpace(body.Email))).Error
	if err != nil {
		// Same message for unknown email and wrong password.
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(body.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	now := time.Now()
	access, err := service.IssueAccessToken(&user, now)
	if err != nil {
		log.Printf("[ERROR] issuing access token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	refresh, err := service.IssueRefreshToken(user.UserID, now)
	if err != nil {
		log.Printf("[ERROR] issuing refresh token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(&user),
	})
}

/* ======================= REFRESH ======================= */

// Refresh handles POST /api/auth/refresh. The refresh token travels in the
// body or the refresh_token cookie.
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var body dto.RefreshRequest
	_ = c.BodyParser(&body)
	raw := strings.TrimSpace(body.RefreshToken)
	if raw == "" {
		raw = strings.TrimSpace(c.Cookies("refresh_token"))
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	userID, err := service.ParseRefreshToken(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	now := time.Now()
	access, err := service.IssueAccessToken(&user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	refresh, err := service.IssueRefreshToken(user.UserID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Token refreshed", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(&user),
	})
}

/* ======================= LOGOUT ======================= */

// Logout handles POST /api/auth/logout. The presented access token lands on
// the blacklist until its natural expiry.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	fields := strings.Fields(authHeader)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return helper.JsonError(c, fiber.StatusBadRequest, "No token to revoke")
	}
	raw := fields[1]

	entry := model.TokenBlacklist{
		Token:     raw,
		ExpiredAt: service.AccessTokenExpiry(raw),
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if !strings.Contains(msg, "duplicate") && !strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
		}
	}

	c.ClearCookie("access_token", "refresh_token")
	return helper.JsonOK(c, "Logged out", nil)
}

/* ======================= ME ======================= */

// Me handles GET /api/auth/me for the logged-in operator.
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return helper.JsonOK(c, "Profile fetched", dto.ToUserResponse(&user))
}

/* ======================= USER MANAGEMENT ======================= */

// CreateUser handles POST /api/admin/users. Only admins reach this route;
// there is no public registration for an ISP back office.
func (ctrl *AuthController) CreateUser(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserName:         strings.TrimSpace(body.Name),
		UserEmail:        strings.ToLower(strings.TrimSpace(body.Email)),
		UserPasswordHash: string(hash),
		UserRole:         model.UserRole(body.Role),
		UserIsActive:     true,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	return helper.JsonCreated(c, "User created", dto.ToUserResponse(&user))
}

// ListUsers handles GET /api/admin/users.
func (ctrl *AuthController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := ctrl.DB.Order("user_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	return helper.JsonList(c, "Users fetched", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// DeactivateUser handles POST /api/admin/users/:id/deactivate. Tokens the
// user already holds die at the auth middleware's active check.
func (ctrl *AuthController) DeactivateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	res := ctrl.DB.Model(&model.UserModel{}).
		Where("user_id = ?", id).
		Update("user_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonUpdated(c, "User deactivated", fiber.Map{"user_id": id})
}
