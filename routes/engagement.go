package routes

import (
	"strings"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/services"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// TrackView records one view interaction and returns the authoritative count.
// The client decides when an interaction counts (sustained hover, click); the
// server just appends and recounts.
func TrackView(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var input TrackViewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	view := models.CollectionView{CollectionID: id, UserID: userID, Interaction: input.Interaction}
	if err := storage.DB.Create(&view).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var viewsCount int64
	storage.DB.Model(&models.CollectionView{}).Where("collection_id = ?", id).Count(&viewsCount)
	storage.DB.Model(&models.Collection{}).Where("id = ?", id).UpdateColumn("views_count", viewsCount)

	ctx.JSON(iris.Map{"viewsCount": viewsCount})
}

// ToggleLike likes or unlikes; the response count replaces whatever the
// client was showing.
func ToggleLike(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var existing models.CollectionLike
	liked := false
	message := "Collection unliked"
	if err := storage.DB.Where("collection_id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		like := models.CollectionLike{CollectionID: id, UserID: userID}
		if err := storage.DB.Create(&like).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		liked = true
		message = "Collection liked"
	} else {
		storage.DB.Delete(&existing)
	}

	var likesCount int64
	storage.DB.Model(&models.CollectionLike{}).Where("collection_id = ?", id).Count(&likesCount)
	storage.DB.Model(&models.Collection{}).Where("id = ?", id).UpdateColumn("likes_count", likesCount)

	if liked && collection.UserID != userID {
		var user models.User
		if err := storage.DB.First(&user, userID).Error; err == nil {
			name := strings.TrimSpace(user.FirstName + " " + user.LastName)
			notificationService := services.NewNotificationService()
			go notificationService.SendCollectionInteractionNotificationToOwner(
				collection.UserID, userID, id, name, "like", collection.Title)
		}
	}

	ctx.JSON(iris.Map{"liked": liked, "likesCount": likesCount, "message": message})
}

// GetLikeStatus reports whether the caller likes a collection and the count.
func GetLikeStatus(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var likedCount int64
	storage.DB.Model(&models.CollectionLike{}).
		Where("collection_id = ? AND user_id = ?", id, userID).Count(&likedCount)

	var likesCount int64
	storage.DB.Model(&models.CollectionLike{}).Where("collection_id = ?", id).Count(&likesCount)

	ctx.JSON(iris.Map{"liked": likedCount > 0, "likesCount": likesCount})
}

// GetComments returns a collection's comments, newest first.
func GetComments(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	limit := ctx.URLParamIntDefault("limit", 50)
	offset := ctx.URLParamIntDefault("offset", 0)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	storage.DB.Model(&models.CollectionComment{}).Where("collection_id = ?", id).Count(&total)

	var comments []models.CollectionComment
	if err := storage.DB.Where("collection_id = ?", id).
		Preload("User").
		Order("posted_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"comments": comments, "total": total})
}

// CreateComment appends a comment and returns it with the author preloaded.
func CreateComment(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var input CreateCommentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	comment := models.CollectionComment{
		CollectionID: id,
		UserID:       userID,
		Content:      input.Content,
	}
	if err := storage.DB.Create(&comment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var commentsCount int64
	storage.DB.Model(&models.CollectionComment{}).Where("collection_id = ?", id).Count(&commentsCount)
	storage.DB.Model(&models.Collection{}).Where("id = ?", id).UpdateColumn("comments_count", commentsCount)

	storage.DB.Preload("User").First(&comment, comment.ID)

	if collection.UserID != userID {
		var user models.User
		if err := storage.DB.First(&user, userID).Error; err == nil {
			name := strings.TrimSpace(user.FirstName + " " + user.LastName)
			notificationService := services.NewNotificationService()
			go notificationService.SendCollectionInteractionNotificationToOwner(
				collection.UserID, userID, id, name, "comment", collection.Title)
		}
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"comment": comment, "commentsCount": commentsCount})
}

// LikeComment toggles the caller's like on a comment.
func LikeComment(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	commentID, err := ctx.Params().GetUint("commentId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid comment id", ctx)
		return
	}

	var comment models.CollectionComment
	if err := storage.DB.First(&comment, commentID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var existing models.CollectionCommentLike
	message := "Comment unliked"
	if err := storage.DB.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error; err != nil {
		like := models.CollectionCommentLike{CommentID: commentID, UserID: userID}
		if err := storage.DB.Create(&like).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		message = "Comment liked"
	} else {
		storage.DB.Delete(&existing)
	}

	var likesCount int64
	storage.DB.Model(&models.CollectionCommentLike{}).Where("comment_id = ?", commentID).Count(&likesCount)
	storage.DB.Model(&models.CollectionComment{}).Where("id = ?", commentID).UpdateColumn("likes_count", likesCount)

	ctx.JSON(iris.Map{"likesCount": likesCount, "message": message})
}

type TrackViewInput struct {
	Interaction string `json:"interaction" validate:"required,max=20"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}
