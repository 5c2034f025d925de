package dto

import "github.com/SundayYogurt/scholarship_service/internal/domain"

type ReviewCreateRequest struct {
	ReviewerName    string  `json:"reviewerName,omitempty" validate:"max=255"`
	ReviewerImage   string  `json:"reviewerImage,omitempty" validate:"omitempty,url,max=2048"`
	ScholarshipID   string  `json:"scholarshipId,omitempty" validate:"max=64"`
	ScholarshipName string  `json:"scholarshipName" validate:"required,max=255"`
	UniversityName  string  `json:"universityName" validate:"required,max=255"`
	RatingPoint     float64 `json:"ratingPoint" validate:"required,min=1,max=5" example:"4.5"`
	ReviewComment   string  `json:"reviewComment" validate:"required,max=2000"`
	ReviewDate      string  `json:"reviewDate,omitempty" validate:"max=64"`
	Image           string  `json:"image,omitempty" validate:"omitempty,url,max=2048"`
}

func (r ReviewCreateRequest) ToDomain(email string) domain.Review {
	return domain.Review{
		Email:           email,
		ReviewerName:    r.ReviewerName,
		ReviewerImage:   r.ReviewerImage,
		ScholarshipID:   r.ScholarshipID,
		ScholarshipName: r.ScholarshipName,
		UniversityName:  r.UniversityName,
		RatingPoint:     r.RatingPoint,
		ReviewComment:   r.ReviewComment,
		ReviewDate:      r.ReviewDate,
		Image:           r.Image,
	}
}

type ReviewUpdateRequest struct {
	RatingPoint     *float64 `json:"ratingPoint,omitempty" validate:"omitempty,min=1,max=5"`
	ReviewDate      *string  `json:"reviewDate,omitempty" validate:"omitempty,max=64"`
	ScholarshipName *string  `json:"scholarshipName,omitempty" validate:"omitempty,min=1,max=255"`
	UniversityName  *string  `json:"universityName,omitempty" validate:"omitempty,min=1,max=255"`
	ReviewComment   *string  `json:"reviewComment,omitempty" validate:"omitempty,min=1,max=2000"`
	Image           *string  `json:"image,omitempty" validate:"omitempty,url,max=2048"`
}

func (r ReviewUpdateRequest) Fields() domain.Fields {
	f := domain.Fields{}
	setFloat(f, "ratingPoint", r.RatingPoint)
	setString(f, "reviewDate", r.ReviewDate)
	setString(f, "scholarshipName", r.ScholarshipName)
	setString(f, "universityName", r.UniversityName)
	setString(f, "reviewComment", r.ReviewComment)
	setString(f, "image", r.Image)
	return f
}
