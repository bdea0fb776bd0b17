package client

import "time"

// The wire shapes below mirror the service's JSON exactly. GORM-backed models
// marshal their base columns capitalized (ID, CreatedAt, UpdatedAt).

type User struct {
	ID        uint   `json:"ID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarURL"`
	Bio       string `json:"bio"`
}

type Photo struct {
	ID           uint      `json:"ID"`
	UserID       uint      `json:"userID"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailURL"`
	Tags         []string  `json:"tags"`
	Category     string    `json:"category"`
	LikesCount   int64     `json:"likesCount"`
	ViewsCount   int64     `json:"viewsCount"`
	CreatedAt    time.Time `json:"CreatedAt"`
}

type CollectionPhoto struct {
	ID           uint      `json:"id"`
	CollectionID uint      `json:"collectionID"`
	PhotoID      uint      `json:"photoID"`
	Photo        Photo     `json:"photo"`
	AddedByID    uint      `json:"addedByID"`
	AddedAt      time.Time `json:"addedAt"`
}

type Collection struct {
	ID              uint              `json:"ID"`
	UserID          uint              `json:"userID"`
	User            User              `json:"user"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	IsPrivate       bool              `json:"isPrivate"`
	IsCollaborative bool              `json:"isCollaborative"`
	CoverPhotoID    *uint             `json:"coverPhotoID"`
	CoverPhoto      *Photo            `json:"coverPhoto,omitempty"`
	PhotosCount     int64             `json:"photosCount"`
	ViewsCount      int64             `json:"viewsCount"`
	LikesCount      int64             `json:"likesCount"`
	CommentsCount   int64             `json:"commentsCount"`
	Photos          []CollectionPhoto `json:"photos,omitempty"`
	Collaborators   []Collaborator    `json:"collaborators,omitempty"`
	CreatedAt       time.Time         `json:"CreatedAt"`
	UpdatedAt       time.Time         `json:"UpdatedAt"`
}

type Collaborator struct {
	ID            uint       `json:"id"`
	CollectionID  uint       `json:"collectionID"`
	InviterID     uint       `json:"inviterID"`
	UserID        *uint      `json:"userID"`
	Email         string     `json:"email"`
	Role          string     `json:"collaboratorRole"`
	Status        string     `json:"status"`
	SelfRequested bool       `json:"selfRequested"`
	InvitedAt     time.Time  `json:"invitedAt"`
	RespondedAt   *time.Time `json:"respondedAt"`
}

type Comment struct {
	ID           uint      `json:"ID"`
	CollectionID uint      `json:"collectionID"`
	UserID       uint      `json:"userID"`
	User         User      `json:"user"`
	Content      string    `json:"content"`
	LikesCount   int64     `json:"likesCount"`
	PostedAt     time.Time `json:"postedAt"`
}

// ListFilters narrows GET /collections. Zero values are omitted from the query.
type ListFilters struct {
	Scope  string // all | public | private | mine
	Search string
	Sort   string // newest | oldest | photos
	Limit  int
	Offset int
	UserID uint
}

type CollectionPage struct {
	Collections []Collection `json:"collections"`
	Total       int64        `json:"total"`
}

type PhotoPage struct {
	Photos []Photo `json:"photos"`
	Total  int64   `json:"total"`
}

type CommentPage struct {
	Comments []Comment `json:"comments"`
	Total    int64     `json:"total"`
}

type CreateCollectionRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	IsPrivate          bool     `json:"isPrivate"`
	IsCollaborative    bool     `json:"isCollaborative"`
	PhotoIDs           []uint   `json:"photoIds"`
	CollaboratorEmails []string `json:"collaboratorEmails,omitempty"`
}

// UpdateCollectionRequest is partial: nil fields are left unchanged server-side.
// PhotoIDs, when set, fully replaces the membership set.
type UpdateCollectionRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	IsPrivate       *bool   `json:"isPrivate,omitempty"`
	IsCollaborative *bool   `json:"isCollaborative,omitempty"`
	PhotoIDs        *[]uint `json:"photoIds,omitempty"`
}

type ViewResult struct {
	ViewsCount int64 `json:"viewsCount"`
}

type LikeResult struct {
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likesCount"`
	Message    string `json:"message"`
}

type LikeStatus struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

type CommentResult struct {
	Comment       Comment `json:"comment"`
	CommentsCount int64   `json:"commentsCount"`
}

type CommentLikeResult struct {
	LikesCount int64  `json:"likesCount"`
	Message    string `json:"message"`
}

type Membership struct {
	IsMember       bool `json:"isMember"`
	IsOwner        bool `json:"isOwner"`
	IsCollaborator bool `json:"isCollaborator"`
}

type UploadResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
