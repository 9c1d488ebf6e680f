package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/response"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":                      res.User,
		"token":                     res.Token,
		"emailVerificationRequired": res.EmailVerificationRequired,
	}, "registration successful, please verify your email", gin.H{"token_expires_at": res.TokenExpiry})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// A pending account is a distinct failure: the client needs the email
		// back so it can prompt for the verification code.
		if errors.Is(err, application.ErrEmailNotVerified) {
			response.Error[any](c, http.StatusForbidden, application.ErrEmailNotVerified.Error(), gin.H{
				"email":                     req.Email,
				"emailVerificationRequired": true,
			})
			return
		}
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":  res.User,
		"token": res.Token,
	}, "login successful", gin.H{"token_expires_at": res.TokenExpiry})
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,code"`
}

// VerifyEmail POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "email verified", nil)
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerification POST /api/auth/resend-verification-code
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification code sent", nil)
}

// ForgotPassword POST /api/auth/forgot-password
// The response shape is identical whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "if the email is registered, a reset code has been sent", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,code"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "current user", nil)
}
