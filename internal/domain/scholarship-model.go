package domain

import "time"

// Scholarship is a catalog entry. Mutated only by admins and moderators.
type Scholarship struct {
	ID                     string    `gorm:"primaryKey;type:varchar(36)" bson:"_id,omitempty" json:"_id"`
	UniversityName         string    `gorm:"type:varchar(255);index" bson:"universityName" json:"universityName"`
	UniversityImage        string    `gorm:"type:text" bson:"universityImage,omitempty" json:"universityImage,omitempty"`
	UniversityLocation     string    `gorm:"type:varchar(255)" bson:"universityLocation,omitempty" json:"universityLocation,omitempty"`
	UniversityWorldRank    int       `bson:"universityWorldRank,omitempty" json:"universityWorldRank,omitempty"`
	ScholarshipName        string    `gorm:"type:varchar(255)" bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	ScholarshipCategory    string    `gorm:"type:varchar(100)" bson:"scholarshipCategory,omitempty" json:"scholarshipCategory,omitempty"`
	SubjectCategory        string    `gorm:"type:varchar(100)" bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	DegreeCategory         string    `gorm:"type:varchar(100)" bson:"degreeCategory,omitempty" json:"degreeCategory,omitempty"`
	TuitionFees            float64   `bson:"tuitionFees,omitempty" json:"tuitionFees,omitempty"`
	ApplicationFees        float64   `bson:"applicationFees" json:"applicationFees"`
	ServiceCharge          float64   `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	ApplicationDeadline    string    `gorm:"type:varchar(64)" bson:"applicationDeadline,omitempty" json:"applicationDeadline,omitempty"`
	ScholarshipPostDate    string    `gorm:"type:varchar(64)" bson:"scholarshipPostDate,omitempty" json:"scholarshipPostDate,omitempty"`
	ScholarshipDescription string    `gorm:"type:text" bson:"scholarshipDescription,omitempty" json:"scholarshipDescription,omitempty"`
	PostedUserEmail        string    `gorm:"type:varchar(320)" bson:"postedUserEmail,omitempty" json:"postedUserEmail,omitempty"`
	CreatedAt              time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`

	// UniversityNameFold is the lower-cased name searched by SQL stores,
	// whose LOWER() may only fold ASCII.
	UniversityNameFold string `gorm:"type:varchar(255);index" bson:"-" json:"-"`
}

// ScholarshipEditableFields lists the fields a catalog PATCH may change.
var ScholarshipEditableFields = []string{
	"applicationFees",
	"degreeCategory",
	"scholarshipCategory",
	"subjectCategory",
	"universityName",
	"applicationDeadline",
	"scholarshipDescription",
	"universityImage",
	"universityLocation",
}

// ScholarshipDetailFields is the projection served by the detail endpoint.
var ScholarshipDetailFields = []string{
	"_id",
	"universityName",
	"universityImage",
	"scholarshipCategory",
	"applicationDeadline",
	"subjectCategory",
	"applicationFees",
	"scholarshipDescription",
	"universityLocation",
}
