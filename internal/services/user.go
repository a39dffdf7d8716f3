package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/validation"
)

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

// Create inserts u, and its Profile when one is attached.
func (s *UserService) Create(ctx context.Context, u *models.User) error {
	if err := checkStruct("user", u); err != nil {
		return err
	}
	if u.Profile != nil {
		if err := checkStruct("profile", u.Profile); err != nil {
			return err
		}
	}
	return classify("user", withCtx(s.db, ctx).Create(u).Error)
}

// Get loads a user with its profile.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := withCtx(s.db, ctx).Preload("Profile").First(&u, id).Error; err != nil {
		return nil, classify("user", err)
	}
	return &u, nil
}

// GetByEmail loads a user with its profile by email address.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := withCtx(s.db, ctx).Preload("Profile").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, classify("user", err)
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := withCtx(s.db, ctx).Preload("Profile").Order("id").Find(&users).Error; err != nil {
		return nil, classify("user", err)
	}
	return users, nil
}

// SetProfile creates the user's profile, or updates its bio when it already exists.
func (s *UserService) SetProfile(ctx context.Context, userID uint, bio string) (*models.Profile, error) {
	v := make(validation.Violations)
	validation.NonZero("user_id", userID, v)
	validation.MaxLen("bio", bio, 250, v)
	if err := fromViolations("profile", v); err != nil {
		return nil, err
	}
	var profile models.Profile
	err := withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.User{}, userID)
		if err != nil {
			return err
		}
		if !ok {
			return foreignKey("profile", "user_id")
		}
		err = tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{UserID: userID, Bio: bio}
			return tx.Create(&profile).Error
		case err != nil:
			return err
		}
		profile.Bio = bio
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, classify("profile", err)
	}
	return &profile, nil
}

// CreateProfile attaches a new profile to an existing user. A second profile
// for the same user is rejected by the unique user_id index.
func (s *UserService) CreateProfile(ctx context.Context, p *models.Profile) error {
	v := validation.Struct(p)
	validation.NonZero("user_id", p.UserID, v)
	if err := fromViolations("profile", v); err != nil {
		return err
	}
	return classify("profile", withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.User{}, p.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return foreignKey("profile", "user_id")
		}
		return tx.Create(p).Error
	}))
}

// ListProfiles returns every stored profile in id order.
func (s *UserService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := withCtx(s.db, ctx).Order("id").Find(&profiles).Error; err != nil {
		return nil, classify("profile", err)
	}
	return profiles, nil
}

// GetProfile loads a profile by id.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var p models.Profile
	if err := withCtx(s.db, ctx).First(&p, id).Error; err != nil {
		return nil, classify("profile", err)
	}
	return &p, nil
}

// Delete removes the user together with its profile.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return classify("user", withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("user")
		}
		return nil
	}))
}
