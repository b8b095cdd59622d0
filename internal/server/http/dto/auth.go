package dto

// LoginRequest carries backoffice credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the session token together with the account profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SwitchMarketRequest selects the market partition for subsequent requests.
type SwitchMarketRequest struct {
	Market string `json:"market" binding:"required,market"`
}
