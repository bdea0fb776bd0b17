package routes

import (
	"net/http"
	"strings"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/users?search=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	search := strings.TrimSpace(ctx.URLParam("search"))

	query := storage.DB.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(email) LIKE lower(?)",
			pattern, pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "db_error", "failed to list users")
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// GET /admin/collections?page=&per_page= — moderation view, privacy ignored
func AdminListCollections(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.Collection{})

	var total int64
	query.Count(&total)

	var collections []models.Collection
	if err := query.Preload("User").Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&collections).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "db_error", "failed to list collections")
		return
	}

	utils.JSONPage(ctx, collections, page, perPage, total)
}

// DELETE /admin/collections/:id — moderation takedown, audited
func AdminDeleteCollection(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "collection not found")
		return
	}

	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionPhoto{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.Collaborator{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionLike{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionView{})
	storage.DB.Where("collection_id = ?", id).Delete(&models.CollectionComment{})
	storage.DB.Delete(&collection)

	utils.Audit(ctx, "admin.collection.delete", "collection", id, collection, nil)

	ctx.JSON(iris.Map{"success": true})
}

// GET /admin/audit?page=&per_page=
func AdminListAuditLog(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var total int64
	storage.DB.Model(&models.AuditLog{}).Count(&total)

	var entries []models.AuditLog
	storage.DB.Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&entries)

	utils.JSONPage(ctx, entries, page, perPage, total)
}
