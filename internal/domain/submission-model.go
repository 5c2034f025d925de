package domain

import "time"

type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionProcessing SubmissionStatus = "processing"
	SubmissionCompleted  SubmissionStatus = "completed"
	SubmissionRejected   SubmissionStatus = "rejected"
)

// Submission is an applicant's cart entry for one scholarship. It is released
// once a payment covering it is recorded.
type Submission struct {
	ID                  string           `gorm:"primaryKey;type:varchar(36)" bson:"_id,omitempty" json:"_id"`
	Email               string           `gorm:"type:varchar(320);index;not null" bson:"email" json:"email"`
	UserName            string           `gorm:"type:varchar(255)" bson:"userName,omitempty" json:"userName,omitempty"`
	ScholarshipID       string           `gorm:"type:varchar(64);index" bson:"scholarshipId" json:"scholarshipId"`
	UniversityName      string           `gorm:"type:varchar(255)" bson:"universityName,omitempty" json:"universityName,omitempty"`
	ScholarshipCategory string           `gorm:"type:varchar(100)" bson:"scholarshipCategory,omitempty" json:"scholarshipCategory,omitempty"`
	SubjectCategory     string           `gorm:"type:varchar(100)" bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	Degree              string           `gorm:"type:varchar(100)" bson:"degree,omitempty" json:"degree,omitempty"`
	ApplicantPhone      string           `gorm:"type:varchar(32)" bson:"applicantPhone,omitempty" json:"applicantPhone,omitempty"`
	ApplicantPhoto      string           `gorm:"type:text" bson:"applicantPhoto,omitempty" json:"applicantPhoto,omitempty"`
	Address             string           `gorm:"type:text" bson:"address,omitempty" json:"address,omitempty"`
	Gender              string           `gorm:"type:varchar(32)" bson:"gender,omitempty" json:"gender,omitempty"`
	SSCResult           string           `gorm:"type:varchar(32)" bson:"sscResult,omitempty" json:"sscResult,omitempty"`
	HSCResult           string           `gorm:"type:varchar(32)" bson:"hscResult,omitempty" json:"hscResult,omitempty"`
	StudyGap            string           `gorm:"type:varchar(32)" bson:"studyGap,omitempty" json:"studyGap,omitempty"`
	ApplicationFees     float64          `bson:"applicationFees,omitempty" json:"applicationFees,omitempty"`
	ServiceCharge       float64          `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	ApplyDate           string           `gorm:"type:varchar(64)" bson:"applyDate,omitempty" json:"applyDate,omitempty"`
	Status              SubmissionStatus `gorm:"type:varchar(20);not null;default:pending" bson:"status" json:"status"`
	CreatedAt           time.Time        `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionProcessing, SubmissionCompleted, SubmissionRejected:
		return true
	}
	return false
}
