package controllers

import (
	"github.com/gin-gonic/gin"

	"realty/dto"
	"realty/response"
	"realty/services"
	"realty/validator"
)

// AuthController serves login, registration, logout and the profile
// views backed by the identity/session store.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{
		auth: auth,
	}
}

// Login authenticates against the identity service. A failed login is
// reported inline; there is no retry or lockout.
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "userName and password are required")
		return
	}

	resp, profile, err := ctl.auth.Login(c.Request.Context(), c.GetString("sessionId"), req)
	if err != nil {
		response.Error(c, 0, "login failed")
		return
	}

	response.Success(c, gin.H{
		"token":       resp.Token,
		"userName":    resp.UserName,
		"userRole":    resp.UserRole,
		"currentUser": profile,
	})
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "userName, password, fullName and phoneNumber are required")
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := validator.ValidatePhone(req.PhoneNumber); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	resp, profile, err := ctl.auth.Register(c.Request.Context(), c.GetString("sessionId"), req)
	if err != nil {
		response.Error(c, 0, "registration failed")
		return
	}

	response.Success(c, gin.H{
		"token":       resp.Token,
		"userName":    resp.UserName,
		"userRole":    resp.UserRole,
		"fullName":    resp.FullName,
		"phoneNumber": resp.PhoneNumber,
		"currentUser": profile,
	})
}

// GetSession restores the stored session payload after a page reload,
// so the client can resume without re-entering credentials.
func (ctl *AuthController) GetSession(c *gin.Context) {
	session, err := ctl.auth.Session(c.Request.Context(), c.GetString("sessionId"))
	if err != nil || session == nil {
		response.Success(c, gin.H{"session": nil})
		return
	}
	response.Success(c, gin.H{"session": session})
}

// Logout clears the local session only; the bearer token is not
// invalidated server-side.
func (ctl *AuthController) Logout(c *gin.Context) {
	if err := ctl.auth.Logout(c.Request.Context(), c.GetString("sessionId")); err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, gin.H{"loggedOut": true})
}

func (ctl *AuthController) GetProfile(c *gin.Context) {
	profile, err := ctl.auth.FetchCurrentUser(c.Request.Context(), c.GetString("token"))
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, profile)
}

func (ctl *AuthController) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "fullName and phoneNumber are required")
		return
	}
	if err := validator.ValidatePhone(req.PhoneNumber); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	profile, err := ctl.auth.UpdateProfile(c.Request.Context(), c.GetString("token"), req)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, profile)
}

func (ctl *AuthController) GetAllUsers(c *gin.Context) {
	users, err := ctl.auth.GetAllUsers(c.Request.Context(), c.GetString("token"))
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, users)
}
