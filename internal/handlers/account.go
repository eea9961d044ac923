package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vireakbo/phoneauth/internal/account"
	iauth "github.com/vireakbo/phoneauth/internal/auth"
	"github.com/vireakbo/phoneauth/internal/middleware"
	"github.com/vireakbo/phoneauth/pkg/errors"
	"github.com/vireakbo/phoneauth/pkg/response"
)

// AccountHandler exposes the account lifecycle over HTTP: registration,
// verification, login, and the password flows.
type AccountHandler struct {
	accounts *account.Service
	jwt      *iauth.JWTService
}

func NewAccountHandler(accounts *account.Service, jwt *iauth.JWTService) *AccountHandler {
	return &AccountHandler{accounts: accounts, jwt: jwt}
}

type registerRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
}

// POST /api/auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.accounts.Register(requestContext(c), req.FullName, req.PhoneNumber, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Code        string `json:"code" validate:"required,len=6"`
}

// POST /api/auth/verify-otp
func (h *AccountHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.accounts.VerifyOTP(requestContext(c), req.PhoneNumber, req.Code); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": true})
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Password    string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, token, err := h.accounts.Authenticate(requestContext(c), req.PhoneNumber, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token)

	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}

type forgotPasswordRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
}

// POST /api/auth/forgot-password
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.accounts.ForgotPassword(requestContext(c), req.PhoneNumber); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password reset requested"})
}

type resetPasswordRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// POST /api/auth/reset-password
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.accounts.ResetPassword(requestContext(c), req.PhoneNumber, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password reset"})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// POST /api/auth/change-password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.accounts.ChangePassword(requestContext(c), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}

// GET /api/auth/me
func (h *AccountHandler) Me(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	user, err := h.accounts.GetUser(requestContext(c), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// POST /api/auth/logout
func (h *AccountHandler) Logout(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	user, err := h.accounts.GetUser(requestContext(c), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.accounts.Logout(requestContext(c), user); err != nil {
		response.Error(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AccountHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AccessTokenCookie,
		token,
		int(h.jwt.AccessTokenTTL().Seconds()),
		"/",
		"",
		true, // Secure
		true, // HttpOnly
	)
}

func (h *AccountHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", true, true)
}
