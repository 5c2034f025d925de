package dto

import "github.com/SundayYogurt/scholarship_service/internal/domain"

type SubmissionCreateRequest struct {
	Email               string  `json:"email,omitempty" validate:"omitempty,email"`
	UserName            string  `json:"userName,omitempty" validate:"max=255"`
	ScholarshipID       string  `json:"scholarshipId" validate:"required,max=64"`
	UniversityName      string  `json:"universityName,omitempty" validate:"max=255"`
	ScholarshipCategory string  `json:"scholarshipCategory,omitempty" validate:"max=100"`
	SubjectCategory     string  `json:"subjectCategory,omitempty" validate:"max=100"`
	Degree              string  `json:"degree,omitempty" validate:"max=100" example:"Masters"`
	ApplicantPhone      string  `json:"applicantPhone,omitempty" validate:"max=32"`
	ApplicantPhoto      string  `json:"applicantPhoto,omitempty" validate:"omitempty,url,max=2048"`
	Address             string  `json:"address,omitempty" validate:"max=500"`
	Gender              string  `json:"gender,omitempty" validate:"max=32"`
	SSCResult           string  `json:"sscResult,omitempty" validate:"max=32"`
	HSCResult           string  `json:"hscResult,omitempty" validate:"max=32"`
	StudyGap            string  `json:"studyGap,omitempty" validate:"max=32"`
	ApplicationFees     float64 `json:"applicationFees,omitempty" validate:"gte=0"`
	ServiceCharge       float64 `json:"serviceCharge,omitempty" validate:"gte=0"`
	ApplyDate           string  `json:"applyDate,omitempty" validate:"max=64"`
}

// ToDomain builds the submission owned by email, whatever the body claimed.
func (r SubmissionCreateRequest) ToDomain(email string) domain.Submission {
	return domain.Submission{
		Email:               email,
		UserName:            r.UserName,
		ScholarshipID:       r.ScholarshipID,
		UniversityName:      r.UniversityName,
		ScholarshipCategory: r.ScholarshipCategory,
		SubjectCategory:     r.SubjectCategory,
		Degree:              r.Degree,
		ApplicantPhone:      r.ApplicantPhone,
		ApplicantPhoto:      r.ApplicantPhoto,
		Address:             r.Address,
		Gender:              r.Gender,
		SSCResult:           r.SSCResult,
		HSCResult:           r.HSCResult,
		StudyGap:            r.StudyGap,
		ApplicationFees:     r.ApplicationFees,
		ServiceCharge:       r.ServiceCharge,
		ApplyDate:           r.ApplyDate,
		Status:              domain.SubmissionPending,
	}
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed rejected" example:"processing"`
}

type DeleteManyRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=500,dive,required"`
}
