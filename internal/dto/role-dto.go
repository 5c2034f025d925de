package dto

type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}

type ModeratorStatusResponse struct {
	Moderator bool `json:"moderator"`
}

type RoleResponse struct {
	Email string `json:"email"`
	Role  string `json:"role" example:"moderator"`
}
