package routes

import (
	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

// ListCollections returns a page of collections visible to the caller.
// filter: all | public | private | mine; sort: newest | oldest | photos.
func ListCollections(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	filter := ctx.URLParamDefault("filter", "all")
	search := ctx.URLParam("search")
	sort := ctx.URLParamDefault("sort", "newest")
	limit := ctx.URLParamIntDefault("limit", 20)
	offset := ctx.URLParamIntDefault("offset", 0)
	ownerParam := ctx.URLParamIntDefault("user_id", 0)

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := storage.DB.Model(&models.Collection{})

	switch filter {
	case "public":
		query = query.Where("is_private = ?", false)
	case "private":
		query = query.Where("is_private = ? AND user_id = ?", true, userID)
	case "mine":
		query = query.Where("user_id = ?", userID)
	default:
		// everything public plus the caller's own private collections
		query = query.Where("is_private = ? OR user_id = ?", false, userID)
	}

	if ownerParam > 0 {
		query = query.Where("user_id = ?", ownerParam)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("lower(title) LIKE lower(?) OR lower(description) LIKE lower(?)", pattern, pattern)
	}

	switch sort {
	case "oldest":
		query = query.Order("created_at ASC")
	case "photos":
		query = query.Order("photos_count DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var total int64
	query.Count(&total)

	var collections []models.Collection
	if err := query.Preload("User").Preload("CoverPhoto").
		Limit(limit).Offset(offset).Find(&collections).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"collections": collections, "total": total})
}

// GetCollection returns the full aggregate: photos and collaborators included
func GetCollection(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.
		Preload("User").
		Preload("CoverPhoto").
		Preload("Photos.Photo").
		Preload("Collaborators").
		First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if collection.IsPrivate && collection.UserID != userID && !isAcceptedCollaborator(id, userID) {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"collection": collection})
}

// CreateCollection creates the aggregate in one request: the collection row,
// its photo membership, and pending invites for any collaborator emails.
func CreateCollection(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	var input CreateCollectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// A private collection cannot solicit public collaboration
	isCollaborative := input.IsCollaborative && !input.IsPrivate

	ownedIDs, ok := ownedPhotoIDs(ctx, userID, input.PhotoIDs)
	if !ok {
		return
	}

	collection := models.Collection{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		IsPrivate:       input.IsPrivate,
		IsCollaborative: isCollaborative,
	}

	if err := storage.DB.Create(&collection).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, photoID := range ownedIDs {
		storage.DB.Create(&models.CollectionPhoto{
			CollectionID: collection.ID,
			PhotoID:      photoID,
			AddedByID:    userID,
		})
	}
	refreshPhotoState(collection.ID)

	if isCollaborative && len(input.CollaboratorEmails) > 0 {
		var owner models.User
		storage.DB.First(&owner, userID)
		for _, email := range input.CollaboratorEmails {
			inviteCollaboratorByEmail(collection, owner, email)
		}
	}

	storage.DB.
		Preload("Photos.Photo").
		Preload("Collaborators").
		Preload("CoverPhoto").
		First(&collection, collection.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"collection": collection})
}

// UpdateCollection is a partial update; photoIds, when present, fully
// replaces the membership set.
func UpdateCollection(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var input UpdateCollectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.Where("id = ? AND user_id = ?", id, userID).First(&collection).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.Title != nil {
		collection.Title = *input.Title
	}
	if input.Description != nil {
		collection.Description = *input.Description
	}
	if input.IsPrivate != nil {
		collection.IsPrivate = *input.IsPrivate
	}
	if input.IsCollaborative != nil {
		collection.IsCollaborative = *input.IsCollaborative
	}
	if collection.IsPrivate {
		collection.IsCollaborative = false
	}

	if err := storage.DB.Save(&collection).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.PhotoIDs != nil {
		ownedIDs, ok := ownedPhotoIDs(ctx, userID, *input.PhotoIDs)
		if !ok {
			return
		}

		var existing []models.CollectionPhoto
		storage.DB.Where("collection_id = ?", collection.ID).Find(&existing)

		for _, row := range existing {
			if !slices.Contains(ownedIDs, row.PhotoID) {
				storage.DB.Delete(&models.CollectionPhoto{}, row.ID)
			}
		}
		for _, photoID := range ownedIDs {
			cp := models.CollectionPhoto{CollectionID: collection.ID, PhotoID: photoID}
			storage.DB.Where("collection_id = ? AND photo_id = ?", collection.ID, photoID).
				Attrs(models.CollectionPhoto{AddedByID: userID}).
				FirstOrCreate(&cp)
		}
		refreshPhotoState(collection.ID)
	}

	storage.DB.
		Preload("Photos.Photo").
		Preload("Collaborators").
		Preload("CoverPhoto").
		First(&collection, collection.ID)

	ctx.JSON(iris.Map{"collection": collection})
}

// DeleteCollection removes the collection and its membership rows. Member
// photos belong to their uploaders and are never touched.
func DeleteCollection(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.Where("id = ? AND user_id = ?", id, userID).First(&collection).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionPhoto{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.Collaborator{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionLike{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionView{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionComment{})

	if err := storage.DB.Delete(&collection).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "collection.delete", "collection", id, collection, nil)

	ctx.JSON(iris.Map{"success": true, "message": "Collection deleted successfully"})
}

// GetUserPhotos powers the wizard's photo picker: the caller browses a user's
// uploads with an optional case-insensitive substring search.
func GetUserPhotos(ctx iris.Context) {
	ownerID, err := ctx.Params().GetUint("userId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid user id", ctx)
		return
	}

	search := ctx.URLParam("search")
	limit := ctx.URLParamIntDefault("limit", 50)
	offset := ctx.URLParamIntDefault("offset", 0)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := storage.DB.Model(&models.Photo{}).Where("user_id = ?", ownerID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("lower(title) LIKE lower(?) OR lower(description) LIKE lower(?)", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var photos []models.Photo
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&photos).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"photos": photos, "total": total})
}

// ownedPhotoIDs deduplicates the requested ids and verifies every one of them
// is an existing photo owned by the caller. Writes the error response itself.
func ownedPhotoIDs(ctx iris.Context, userID uint, photoIDs []uint) ([]uint, bool) {
	unique := make([]uint, 0, len(photoIDs))
	for _, id := range photoIDs {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	var count int64
	storage.DB.Model(&models.Photo{}).Where("id IN ? AND user_id = ?", unique, userID).Count(&count)
	if int(count) != len(unique) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "one or more photos do not exist or are not yours", ctx)
		return nil, false
	}
	return unique, true
}

// refreshPhotoState recomputes photos_count from the membership table and
// keeps the cover pointed at the most recently added photo.
func refreshPhotoState(collectionID uint) {
	var count int64
	storage.DB.Model(&models.CollectionPhoto{}).Where("collection_id = ?", collectionID).Count(&count)

	var latest models.CollectionPhoto
	var coverID *uint
	if err := storage.DB.Where("collection_id = ?", collectionID).
		Order("added_at DESC, id DESC").First(&latest).Error; err == nil {
		coverID = &latest.PhotoID
	}

	storage.DB.Model(&models.Collection{}).Where("id = ?", collectionID).
		Updates(map[string]interface{}{"photos_count": count, "cover_photo_id": coverID})
}

func isAcceptedCollaborator(collectionID, userID uint) bool {
	var count int64
	storage.DB.Model(&models.Collaborator{}).
		Where("collection_id = ? AND user_id = ? AND status = ?", collectionID, userID, models.CollaboratorAccepted).
		Count(&count)
	return count > 0
}

type CreateCollectionInput struct {
	Title              string   `json:"title" validate:"required,min=3,max=50"`
	Description        string   `json:"description" validate:"max=500"`
	IsPrivate          bool     `json:"isPrivate"`
	IsCollaborative    bool     `json:"isCollaborative"`
	PhotoIDs           []uint   `json:"photoIds" validate:"required,min=1"`
	CollaboratorEmails []string `json:"collaboratorEmails" validate:"omitempty,dive,email"`
}

type UpdateCollectionInput struct {
	Title           *string `json:"title" validate:"omitempty,min=3,max=50"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	IsPrivate       *bool   `json:"isPrivate"`
	IsCollaborative *bool   `json:"isCollaborative"`
	PhotoIDs        *[]uint `json:"photoIds"`
}
