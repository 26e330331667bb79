package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/application"
	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/response"
)

type CodeIssuer interface {
	Issue(ctx context.Context, phone string) error
}

type AuthUsecase interface {
	RegisterUser(ctx context.Context, in application.RegisterInput) (*entity.User, error)
	RegisterDetails(ctx context.Context, in application.RegisterDetailsInput) (*entity.User, error)
	Login(ctx context.Context, in application.LoginInput) (*application.Session, error)
	LoginWithCode(ctx context.Context, phone, code string) (*application.Session, error)
	Me(ctx context.Context, userID string) (*entity.User, error)
}

type AuthHandler struct {
	Codes  CodeIssuer
	Auth   AuthUsecase
	Logger *logrus.Logger
}

func NewAuthHandler(codes CodeIssuer, auth AuthUsecase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Codes: codes, Auth: auth, Logger: logger}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

type sendCodeRequest struct {
	Phone string `json:"phone" binding:"required,mobile"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type guardFields struct {
	HoneypotField  string      `json:"honeypotField"`
	CaptchaToken   string      `json:"captchaToken"`
	FormLoadedTime epochMillis `json:"formLoadedTime"`
}

func (g guardFields) input(c *gin.Context) application.GuardInput {
	return application.GuardInput{
		HoneypotField:  g.HoneypotField,
		CaptchaToken:   g.CaptchaToken,
		FormLoadedTime: int64(g.FormLoadedTime),
		RemoteIP:       clientIP(c),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	guardFields
}

type registerDetailsRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	guardFields
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	guardFields
}

func sessionBody(s *application.Session) gin.H {
	return gin.H{
		"user":       toUserDTO(s.User),
		"token":      s.Token,
		"expires_at": s.ExpiresAt,
	}
}

// SendCode POST /auth/send-code
// Always succeeds for a well-formed phone, registered or not.
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if req.Phone == "" {
			failBinding(c, apperror.ErrPhoneRequired, err)
			return
		}
		failBinding(c, apperror.ErrInvalidPhone, err)
		return
	}
	if err := h.Codes.Issue(c.Request.Context(), req.Phone); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Code sent successfully", nil)
}

// VerifyCode POST /auth/verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, apperror.ErrCodeRequired, err)
		return
	}
	sess, err := h.Auth.LoginWithCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			failWithStatus(c, h.Logger, http.StatusBadRequest, err)
			return
		}
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, sessionBody(sess), "Code verified", nil)
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, apperror.ErrMissingFields, err)
		return
	}
	u, err := h.Auth.RegisterUser(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Phone:    req.Phone,
		Password: req.Password,
		Guard:    req.input(c),
	})
	if errors.Is(err, application.ErrDiscarded) {
		response.Success[any](c, http.StatusOK, nil, "Registration successful", nil)
		return
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": toUserDTO(u)}, "User registered successfully", nil)
}

// RegisterDetails POST /auth/register-details
func (h *AuthHandler) RegisterDetails(c *gin.Context) {
	var req registerDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, apperror.ErrMissingFields, err)
		return
	}
	u, err := h.Auth.RegisterDetails(c.Request.Context(), application.RegisterDetailsInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Gender:   req.Gender,
		Password: req.Password,
		Phone:    req.Phone,
		Guard:    req.input(c),
	})
	if errors.Is(err, application.ErrDiscarded) {
		response.Success[any](c, http.StatusOK, nil, "Registration details saved successfully", nil)
		return
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": toUserDTO(u)}, "Registration details saved successfully", nil)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, apperror.ErrLoginFields, err)
		return
	}
	sess, err := h.Auth.Login(c.Request.Context(), application.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
		Guard:    req.input(c),
	})
	if errors.Is(err, application.ErrDiscarded) {
		response.Success[any](c, http.StatusOK, nil, "Login successful", nil)
		return
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, sessionBody(sess), "Login successful", nil)
}

// Me GET /auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Auth.Me(c.Request.Context(), uid)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toUserDTO(u)}, "profile", nil)
}
