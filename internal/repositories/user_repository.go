package repositories

import (
	"errors"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Count() (int64, error)
	SetRefreshToken(userID string, token *string) error
	FindProviderMembership(userID string) (*models.ProviderUser, error)
	CreateReferral(referral *models.Referral) error
	AwardBadge(userID, slug string) error
	UpsertProfile(profile *models.UserProfile) error
	FindProfile(userID string) (*models.UserProfile, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) SetRefreshToken(userID string, token *string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", token).Error
}

func (r *userRepository) FindProviderMembership(userID string) (*models.ProviderUser, error) {
	var membership models.ProviderUser
	err := r.db.First(&membership, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *userRepository) CreateReferral(referral *models.Referral) error {
	return r.db.Create(referral).Error
}

// AwardBadge inserts the badge row and relies on the (user, badge) unique
// index to absorb concurrent duplicate awards. A duplicate is not an error.
func (r *userRepository) AwardBadge(userID, slug string) error {
	err := r.db.Create(&models.UserBadge{UserID: userID, Slug: slug}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *userRepository) UpsertProfile(profile *models.UserProfile) error {
	existing := &models.UserProfile{}
	err := r.db.First(existing, "user_id = ?", profile.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(existing).Updates(map[string]interface{}{
		"pessoas":          profile.Pessoas,
		"dispositivos":     profile.Dispositivos,
		"atividades":       profile.Atividades,
		"velocidade_atual": profile.VelocidadeAtual,
	}).Error
}

func (r *userRepository) FindProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
