package dto

import "github.com/SundayYogurt/scholarship_service/internal/domain"

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email,max=320" example:"student@example.com"`
	Name  string `json:"name,omitempty" validate:"max=255" example:"Jane Doe"`
	Photo string `json:"photo,omitempty" validate:"omitempty,url,max=2048"`
}

func (r CreateUserRequest) ToDomain() domain.User {
	return domain.User{
		Email: r.Email,
		Name:  r.Name,
		Photo: r.Photo,
		Role:  domain.RoleNone,
	}
}

// UserExistsResponse is answered instead of an insert outcome when the email
// is already registered.
type UserExistsResponse struct {
	Message    string  `json:"message" example:"User already exists"`
	InsertedID *string `json:"insertedId"`
}
