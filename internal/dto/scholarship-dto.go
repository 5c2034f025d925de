package dto

import "github.com/SundayYogurt/scholarship_service/internal/domain"

type ScholarshipCreateRequest struct {
	UniversityName         string  `json:"universityName" validate:"required,max=255" example:"University of Oxford"`
	UniversityImage        string  `json:"universityImage,omitempty" validate:"omitempty,url,max=2048"`
	UniversityLocation     string  `json:"universityLocation,omitempty" validate:"max=255" example:"Oxford, United Kingdom"`
	UniversityWorldRank    int     `json:"universityWorldRank,omitempty" validate:"gte=0"`
	ScholarshipName        string  `json:"scholarshipName,omitempty" validate:"max=255"`
	ScholarshipCategory    string  `json:"scholarshipCategory" validate:"required,max=100" example:"Full fund"`
	SubjectCategory        string  `json:"subjectCategory" validate:"required,max=100" example:"Engineering"`
	DegreeCategory         string  `json:"degreeCategory" validate:"required,max=100" example:"Masters"`
	TuitionFees            float64 `json:"tuitionFees,omitempty" validate:"gte=0"`
	ApplicationFees        float64 `json:"applicationFees" validate:"gte=0" example:"25"`
	ServiceCharge          float64 `json:"serviceCharge,omitempty" validate:"gte=0"`
	ApplicationDeadline    string  `json:"applicationDeadline" validate:"required,max=64" example:"2026-12-31"`
	ScholarshipPostDate    string  `json:"scholarshipPostDate,omitempty" validate:"max=64"`
	ScholarshipDescription string  `json:"scholarshipDescription,omitempty" validate:"max=5000"`
}

func (r ScholarshipCreateRequest) ToDomain(postedBy string) domain.Scholarship {
	return domain.Scholarship{
		UniversityName:         r.UniversityName,
		UniversityImage:        r.UniversityImage,
		UniversityLocation:     r.UniversityLocation,
		UniversityWorldRank:    r.UniversityWorldRank,
		ScholarshipName:        r.ScholarshipName,
		ScholarshipCategory:    r.ScholarshipCategory,
		SubjectCategory:        r.SubjectCategory,
		DegreeCategory:         r.DegreeCategory,
		TuitionFees:            r.TuitionFees,
		ApplicationFees:        r.ApplicationFees,
		ServiceCharge:          r.ServiceCharge,
		ApplicationDeadline:    r.ApplicationDeadline,
		ScholarshipPostDate:    r.ScholarshipPostDate,
		ScholarshipDescription: r.ScholarshipDescription,
		PostedUserEmail:        postedBy,
	}
}

// ScholarshipUpdateRequest only carries editable fields; anything else in the
// body is dropped while decoding.
type ScholarshipUpdateRequest struct {
	ApplicationFees        *float64 `json:"applicationFees,omitempty" validate:"omitempty,gte=0"`
	DegreeCategory         *string  `json:"degreeCategory,omitempty" validate:"omitempty,min=1,max=100"`
	ScholarshipCategory    *string  `json:"scholarshipCategory,omitempty" validate:"omitempty,min=1,max=100"`
	SubjectCategory        *string  `json:"subjectCategory,omitempty" validate:"omitempty,min=1,max=100"`
	UniversityName         *string  `json:"universityName,omitempty" validate:"omitempty,min=1,max=255"`
	ApplicationDeadline    *string  `json:"applicationDeadline,omitempty" validate:"omitempty,max=64"`
	ScholarshipDescription *string  `json:"scholarshipDescription,omitempty" validate:"omitempty,max=5000"`
	UniversityImage        *string  `json:"universityImage,omitempty" validate:"omitempty,url,max=2048"`
	UniversityLocation     *string  `json:"universityLocation,omitempty" validate:"omitempty,max=255"`
}

func (r ScholarshipUpdateRequest) Fields() domain.Fields {
	f := domain.Fields{}
	setFloat(f, "applicationFees", r.ApplicationFees)
	setString(f, "degreeCategory", r.DegreeCategory)
	setString(f, "scholarshipCategory", r.ScholarshipCategory)
	setString(f, "subjectCategory", r.SubjectCategory)
	setString(f, "universityName", r.UniversityName)
	setString(f, "applicationDeadline", r.ApplicationDeadline)
	setString(f, "scholarshipDescription", r.ScholarshipDescription)
	setString(f, "universityImage", r.UniversityImage)
	setString(f, "universityLocation", r.UniversityLocation)
	return f
}

type CountResponse struct {
	Count int64 `json:"count" example:"25"`
}

func setString(f domain.Fields, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

func setFloat(f domain.Fields, key string, v *float64) {
	if v != nil {
		f[key] = *v
	}
}

// ScholarshipDetail is the projection the detail endpoint serves.
type ScholarshipDetail struct {
	ID                     string  `json:"_id"`
	UniversityName         string  `json:"universityName"`
	UniversityImage        string  `json:"universityImage"`
	ScholarshipCategory    string  `json:"scholarshipCategory"`
	ApplicationDeadline    string  `json:"applicationDeadline"`
	SubjectCategory        string  `json:"subjectCategory"`
	ApplicationFees        float64 `json:"applicationFees"`
	ScholarshipDescription string  `json:"scholarshipDescription"`
	UniversityLocation     string  `json:"universityLocation"`
}

func NewScholarshipDetail(s domain.Scholarship) ScholarshipDetail {
	return ScholarshipDetail{
		ID:                     s.ID,
		UniversityName:         s.UniversityName,
		UniversityImage:        s.UniversityImage,
		ScholarshipCategory:    s.ScholarshipCategory,
		ApplicationDeadline:    s.ApplicationDeadline,
		SubjectCategory:        s.SubjectCategory,
		ApplicationFees:        s.ApplicationFees,
		ScholarshipDescription: s.ScholarshipDescription,
		UniversityLocation:     s.UniversityLocation,
	}
}
