package repositories

import (
	"errors"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type ProviderRepository interface {
	FindByID(id string) (*models.Provider, error)
	FindByIDWithAccount(id string) (*models.Provider, error)
	SlugExists(slug string) (bool, error)
	FindAccountByProvider(providerID string) (*models.ProviderAccount, error)
	FindAccountByBillingSub(subID string) (*models.ProviderAccount, error)
	UpdateAccount(account *models.ProviderAccount) error
	CountActivePlans(providerID string) (int64, error)
	Count() (int64, error)
	CreatePaymentTransaction(tx *models.PaymentTransaction) error
}

type providerRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) FindByID(id string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.First(&provider, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) FindByIDWithAccount(id string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.Preload("Account").First(&provider, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) SlugExists(slug string) (bool, error) {
	var provider models.Provider
	err := r.db.Select("id").First(&provider, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *providerRepository) FindAccountByProvider(providerID string) (*models.ProviderAccount, error) {
	var account models.ProviderAccount
	if err := r.db.First(&account, "provider_id = ?", providerID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *providerRepository) FindAccountByBillingSub(subID string) (*models.ProviderAccount, error) {
	var account models.ProviderAccount
	if err := r.db.First(&account, "billing_sub_id = ?", subID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *providerRepository) UpdateAccount(account *models.ProviderAccount) error {
	return r.db.Save(account).Error
}

func (r *providerRepository) CountActivePlans(providerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Plan{}).
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Count(&count).Error
	return count, err
}

func (r *providerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Provider{}).Count(&count).Error
	return count, err
}

func (r *providerRepository) CreatePaymentTransaction(tx *models.PaymentTransaction) error {
	err := r.db.Create(tx).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Billing gateways redeliver; the unique external ID makes the
		// insert idempotent.
		return nil
	}
	return err
}
