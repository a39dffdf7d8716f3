package models

// User represents an account in the records system.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:120;not null" json:"email" validate:"required,email,max=120"`
	Password string `gorm:"not null" json:"-" validate:"required"` // never serialized
	IsActive bool   `gorm:"not null" json:"is_active"`
	// Profile is the user's one-to-one profile. Deleting the user removes it.
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty" validate:"-"`
}

// TableName pins the table name used by the storage layer.
func (User) TableName() string { return "users" }

// Serialize returns {id, email, profile}. The password is never part of the output.
func (u *User) Serialize() (Mapping, error) {
	if u.Profile == nil {
		return nil, missing("user", u.ID, "profile")
	}
	profile, err := u.Profile.Serialize()
	if err != nil {
		return nil, err
	}
	m := Mapping{"id": u.ID, "email": u.Email}
	m[Relations.key("user", "profile")] = profile
	return m, nil
}
