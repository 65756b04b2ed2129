package models

import "time"

// Profile holds the artifacts uploaded during registration.
// There is at most one profile per user.
type Profile struct {
	ProfileID int64 `json:"id"`
	UserID    int64 `json:"userId"`

	// ProfilePicURL is the public URL of the compressed profile picture.
	ProfilePicURL string `json:"profilePicUrl"`

	// CertificatePDFURL is the public URL of the uploaded certificate.
	CertificatePDFURL string `json:"certificatePdfUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}
