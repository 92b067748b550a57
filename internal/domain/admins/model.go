package admins

import "time"

// Admin is a row of the admins collection; the email is the key.
type Admin struct {
	Email   string    `gorm:"primaryKey;type:varchar(255)" json:"email" firestore:"email"`
	AddedBy string    `json:"addedBy,omitempty" firestore:"addedBy,omitempty"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"addedAt" firestore:"addedAt"`
}
