package models

import (
	"time"

	"gorm.io/gorm"
)

type Collection struct {
	gorm.Model
	UserID uint `json:"userID" gorm:"not null;index"`
	User   User `json:"user" gorm:"foreignKey:UserID;references:ID"`

	Title       string `json:"title" gorm:"size:50;not null"`
	Description string `json:"description" gorm:"size:500"`

	IsPrivate       bool `json:"isPrivate" gorm:"default:false;index"`
	IsCollaborative bool `json:"isCollaborative" gorm:"default:false;index"`

	CoverPhotoID *uint  `json:"coverPhotoID"`
	CoverPhoto   *Photo `json:"coverPhoto,omitempty" gorm:"foreignKey:CoverPhotoID;references:ID"`

	PhotosCount   int64 `json:"photosCount" gorm:"default:0"`
	ViewsCount    int64 `json:"viewsCount" gorm:"default:0"`
	LikesCount    int64 `json:"likesCount" gorm:"default:0"`
	CommentsCount int64 `json:"commentsCount" gorm:"default:0"`

	Photos        []CollectionPhoto `json:"photos,omitempty" gorm:"foreignKey:CollectionID;references:ID"`
	Collaborators []Collaborator    `json:"collaborators,omitempty" gorm:"foreignKey:CollectionID;references:ID"`
}

// CollectionPhoto references a photo from a collection. Photos stay owned by
// their uploader; deleting a collection only deletes these rows.
type CollectionPhoto struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CollectionID uint      `json:"collectionID" gorm:"not null;index:idx_collection_photo,unique"`
	PhotoID      uint      `json:"photoID" gorm:"not null;index:idx_collection_photo,unique"`
	Photo        Photo     `json:"photo" gorm:"foreignKey:PhotoID;references:ID"`
	AddedByID    uint      `json:"addedByID" gorm:"index"`
	AddedAt      time.Time `json:"addedAt"`
}

func (cp *CollectionPhoto) BeforeCreate(tx *gorm.DB) (err error) {
	if cp.AddedAt.IsZero() {
		cp.AddedAt = time.Now()
	}
	return
}

type CollectionLike struct {
	gorm.Model
	CollectionID uint `json:"collectionID" gorm:"index;not null"`
	UserID       uint `json:"userID" gorm:"index;not null"`
}

// CollectionView is one recorded view interaction (hover, click, page).
type CollectionView struct {
	gorm.Model
	CollectionID uint   `json:"collectionID" gorm:"index;not null"`
	UserID       uint   `json:"userID" gorm:"index"`
	Interaction  string `json:"interaction" gorm:"size:20"`
}

type CollectionComment struct {
	gorm.Model
	CollectionID uint   `json:"collectionID" gorm:"index;not null"`
	UserID       uint   `json:"userID" gorm:"index;not null"`
	User         User   `json:"user" gorm:"foreignKey:UserID;references:ID"`
	Content      string `json:"content" gorm:"type:text;not null"`
	LikesCount   int64  `json:"likesCount" gorm:"default:0"`
	// For ordering by recency separate from UpdatedAt when edits occur
	PostedAt time.Time `json:"postedAt"`
}

type CollectionCommentLike struct {
	gorm.Model
	CommentID uint `json:"commentID" gorm:"index;not null"`
	UserID    uint `json:"userID" gorm:"index;not null"`
}

func (cc *CollectionComment) BeforeCreate(tx *gorm.DB) (err error) {
	if cc.PostedAt.IsZero() {
		cc.PostedAt = time.Now()
	}
	return
}
