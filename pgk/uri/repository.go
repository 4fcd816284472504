package uri

import (
	"gorm.io/gorm"

	"github.com/saveblush/annotate-api/models"
)

// repository interface
type Repository interface {
	FindDocumentIDs(db *gorm.DB, uri string) ([]int64, error)
	FindURIs(db *gorm.DB, documentIDs []int64) ([]string, error)
	Insert(db *gorm.DB, req *models.DocumentURI) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) FindDocumentIDs(db *gorm.DB, uri string) ([]int64, error) {
	var ids []int64
	err := db.Model(&models.DocumentURI{}).
		Where("uri = ?", uri).
		Order("id").
		Pluck("document_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *repository) FindURIs(db *gorm.DB, documentIDs []int64) ([]string, error) {
	var uris []string
	err := db.Model(&models.DocumentURI{}).
		Where("document_id IN ?", documentIDs).
		Order("id").
		Pluck("uri", &uris).Error
	if err != nil {
		return nil, err
	}

	return uris, nil
}

func (r *repository) Insert(db *gorm.DB, req *models.DocumentURI) error {
	err := db.Create(req).Error
	if err != nil {
		return err
	}

	return nil
}
