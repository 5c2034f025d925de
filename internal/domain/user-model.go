package domain

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id,omitempty" json:"_id"`
	Email     string    `gorm:"type:varchar(320);uniqueIndex;not null" bson:"email" json:"email"`
	Name      string    `gorm:"type:varchar(255)" bson:"name,omitempty" json:"name,omitempty"`
	Photo     string    `gorm:"type:text" bson:"photo,omitempty" json:"photo,omitempty"`
	Role      Role      `gorm:"type:varchar(20);not null;default:none" bson:"role,omitempty" json:"role"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// EffectiveRole treats a missing or unknown stored role as RoleNone.
func (u *User) EffectiveRole() Role {
	if u == nil {
		return RoleNone
	}
	return ParseRole(string(u.Role))
}
