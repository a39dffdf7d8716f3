package models

// Profile holds the biography attached to a single user.
// UserID is unique so a user can own at most one profile.
type Profile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Bio    string `gorm:"size:250" json:"bio" validate:"max=250"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-" validate:"-"`
}

func (Profile) TableName() string { return "profiles" }

// Serialize returns {id, bio, user_id}. It never recurses into the owning user.
func (p *Profile) Serialize() (Mapping, error) {
	return Mapping{
		"id":      p.ID,
		"bio":     p.Bio,
		"user_id": p.UserID,
	}, nil
}
