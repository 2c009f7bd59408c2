package dto

// LoginRequest are the credentials for the identity service.
type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is what the identity service answers on success.
type LoginResponse struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
	UserRole string `json:"userRole"`
}

type RegisterRequest struct {
	UserName    string `json:"userName" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type RegisterResponse struct {
	Token       string `json:"token"`
	UserName    string `json:"userName"`
	UserRole    string `json:"userRole"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProfileUpdateRequest edits the mutable profile fields.
type ProfileUpdateRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// Session is the payload kept in redis for a logged-in session.
type Session struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
	UserRole string `json:"userRole"`
}
