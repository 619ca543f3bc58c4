package dto

// LoginRequest carries the merchant's credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token      string `json:"token"`
	MerchantID string `json:"merchantID"`
	Username   string `json:"username"`
}
