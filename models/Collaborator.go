package models

import "time"

// Collaborator is one invitation/membership record on a collection.
// UserID stays nil until the invited email resolves to an account.
type Collaborator struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CollectionID uint       `json:"collectionID" gorm:"not null;index"`
	Collection   Collection `json:"collection" gorm:"foreignKey:CollectionID"`

	InviterID uint  `json:"inviterID" gorm:"not null;index"`
	Inviter   User  `json:"inviter" gorm:"foreignKey:InviterID"`
	UserID    *uint `json:"userID" gorm:"index"`
	User      *User `json:"user" gorm:"foreignKey:UserID"`

	Email string `json:"email" gorm:"size:255;index"`
	Role  string `json:"collaboratorRole" gorm:"size:32;default:editor"`

	// pending, accepted, declined
	Status string `json:"status" gorm:"size:16;index"`

	// Self-initiated access request on a public collaborative collection;
	// carries no email, so resend has nothing to deliver to.
	SelfRequested bool `json:"selfRequested" gorm:"default:false"`

	// Salted SHA-256 digest of the 6-digit invite code. Never the code itself.
	CodeDigest    string     `json:"-" gorm:"size:128"`
	CodeExpiresAt *time.Time `json:"-"`

	InvitedAt   time.Time  `json:"invitedAt"`
	RespondedAt *time.Time `json:"respondedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	CollaboratorPending  = "pending"
	CollaboratorAccepted = "accepted"
	CollaboratorDeclined = "declined"
)

// Notification represents system notifications for users
type Notification struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userID" gorm:"not null;index"`
	User   User `json:"user" gorm:"foreignKey:UserID"`

	Type    string `json:"type" gorm:"size:32;index"` // collab_invite, access_request, etc.
	Title   string `json:"title" gorm:"size:100"`
	Message string `json:"message" gorm:"size:500"`

	// Reference data
	RefType string `json:"refType" gorm:"size:32"` // collection, photo, etc.
	RefID   uint   `json:"refID"`

	IsRead    bool       `json:"isRead" gorm:"default:false"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt"`
}
