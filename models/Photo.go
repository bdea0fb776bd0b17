package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Photo struct {
	gorm.Model
	UserID uint `json:"userID" gorm:"not null;index"`
	User   User `json:"user" gorm:"foreignKey:UserID;references:ID"`

	Title       string `json:"title" gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"`

	URL          string         `json:"url" gorm:"not null"`
	ThumbnailURL string         `json:"thumbnailURL"`
	Tags         datatypes.JSON `json:"tags"`
	Category     string         `json:"category" gorm:"size:50;index"`

	LikesCount int64 `json:"likesCount" gorm:"default:0"`
	ViewsCount int64 `json:"viewsCount" gorm:"default:0"`
}

func (p *Photo) MarshalJSON() ([]byte, error) {
	type Alias Photo
	aux := &struct {
		Tags []string `json:"tags,omitempty"`
		*Alias
	}{
		Tags:  []string{},
		Alias: (*Alias)(p),
	}

	if p.Tags != nil {
		var tags []string
		if err := json.Unmarshal(p.Tags, &tags); err == nil {
			aux.Tags = tags
		}
	}

	return json.Marshal(aux)
}
