package models

// DocumentURI one address of a document.
// Rows sharing a document_id are equivalent representations of the same
// resource; they are stored normalized.
type DocumentURI struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	DocumentID int64  `json:"document_id" gorm:"type:bigint"`
	URI        string `json:"uri" gorm:"type:text"`
}

func (DocumentURI) TableName() string {
	return "document_uris"
}
