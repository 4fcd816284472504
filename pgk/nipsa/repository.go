package nipsa

import (
	"gorm.io/gorm"

	"github.com/saveblush/annotate-api/models"
)

// repository interface
type Repository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.NipsaUser, error)
	FindAll(db *gorm.DB) ([]*models.NipsaUser, error)
	Insert(db *gorm.DB, req *models.NipsaUser) error
	Delete(db *gorm.DB, req *models.NipsaUser) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) FindByUserID(db *gorm.DB, userID string) (*models.NipsaUser, error) {
	entities := &models.NipsaUser{}
	err := db.Limit(1).Where("user_id = ?", userID).Find(entities).Error
	if err != nil {
		return nil, err
	}

	return entities, nil
}

func (r *repository) FindAll(db *gorm.DB) ([]*models.NipsaUser, error) {
	entities := []*models.NipsaUser{}
	err := db.Order("created_at, user_id").Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return entities, nil
}

func (r *repository) Insert(db *gorm.DB, req *models.NipsaUser) error {
	err := db.Create(req).Error
	if err != nil {
		return err
	}

	return nil
}

func (r *repository) Delete(db *gorm.DB, req *models.NipsaUser) error {
	err := db.Delete(req).Error
	if err != nil {
		return err
	}

	return nil
}
