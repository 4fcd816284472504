package models

import "time"

// NipsaUser flagged user
// "Not In Public Site Areas": annotations from a flagged user are hidden
// from search results for everyone except the user themself.
type NipsaUser struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:varchar(512)"`
	CreatedAt time.Time `json:"-"`
}

func (NipsaUser) TableName() string {
	return "nipsa_users"
}

const (
	FlagActionNipsa   = "nipsa"
	FlagActionUnnipsa = "unnipsa"
)

// FlagNotice message published on every flag/unflag call
type FlagNotice struct {
	Action string `json:"action"`
	UserID string `json:"user_id"`
}
