package dto

// ===== Common responses =====

type APIError struct {
	Message string `json:"message" example:"forbidden access"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
