package domain

import "time"

type Review struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" bson:"_id,omitempty" json:"_id"`
	Email           string    `gorm:"type:varchar(320);index" bson:"email,omitempty" json:"email,omitempty"`
	ReviewerName    string    `gorm:"type:varchar(255)" bson:"reviewerName,omitempty" json:"reviewerName,omitempty"`
	ReviewerImage   string    `gorm:"type:text" bson:"reviewerImage,omitempty" json:"reviewerImage,omitempty"`
	ScholarshipID   string    `gorm:"type:varchar(64);index" bson:"scholarshipId,omitempty" json:"scholarshipId,omitempty"`
	ScholarshipName string    `gorm:"type:varchar(255)" bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName  string    `gorm:"type:varchar(255)" bson:"universityName,omitempty" json:"universityName,omitempty"`
	RatingPoint     float64   `bson:"ratingPoint" json:"ratingPoint"`
	ReviewComment   string    `gorm:"type:text" bson:"reviewComment,omitempty" json:"reviewComment,omitempty"`
	ReviewDate      string    `gorm:"type:varchar(64)" bson:"reviewDate,omitempty" json:"reviewDate,omitempty"`
	Image           string    `gorm:"type:text" bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt       time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

var ReviewEditableFields = []string{
	"ratingPoint",
	"reviewDate",
	"scholarshipName",
	"universityName",
	"reviewComment",
	"image",
}
