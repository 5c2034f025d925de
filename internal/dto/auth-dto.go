package dto

type TokenRequest struct {
	Email string `json:"email" validate:"required,email,max=320" example:"student@example.com"`
	Name  string `json:"name,omitempty" validate:"max=255" example:"Jane Doe"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// AuthResponse is the decoded identity claim of a bearer token.
type AuthResponse struct {
	Email  string  `json:"email"`
	Name   string  `json:"name,omitempty"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
