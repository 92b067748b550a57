package users

import (
	"strings"
	"time"
)

const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFirebase = "firebase"
)

type User struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)" json:"id" firestore:"-"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email" firestore:"email"`
	Name         string  `json:"name" firestore:"name"`
	PasswordHash *string `json:"-" firestore:"passwordHash,omitempty"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"authProvider" firestore:"authProvider"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-" firestore:"googleSub,omitempty"`
	FirebaseUID  *string `gorm:"column:firebase_uid;uniqueIndex:idx_users_firebase_uid" json:"-" firestore:"firebaseUid,omitempty"`
	Role         Role    `gorm:"type:varchar(32);not null;default:'Regular User'" json:"role" firestore:"role"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// NormalizeEmail is applied on every write and lookup; emails compare case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
