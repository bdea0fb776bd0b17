package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
)

func TestDeletePhotoRecountsCollections(t *testing.T) {
	app := buildTestApp(t)
	userID, token := registerTestUser(t, app, "owner@example.com")
	p1 := createTestPhoto(t, userID, "keeper")
	p2 := createTestPhoto(t, userID, "goner")

	resp := doJSON(t, app, http.MethodPost, "/api/collections", token, map[string]interface{}{
		"title":    "Walks",
		"photoIds": []uint{p1, p2},
	})
	var created collectionEnvelope
	decodeBody(t, resp, &created)
	id := created.Collection.ID

	del := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/photos/%d", p2), token, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("delete photo: status %d body %s", del.Code, del.Body.String())
	}

	var collection models.Collection
	storage.DB.First(&collection, id)
	if collection.PhotosCount != 1 {
		t.Fatalf("photosCount after photo delete = %d, want 1", collection.PhotosCount)
	}

	var joins int64
	storage.DB.Model(&models.CollectionPhoto{}).Where("photo_id = ?", p2).Count(&joins)
	if joins != 0 {
		t.Fatalf("membership rows left for deleted photo: %d", joins)
	}
}

func TestDeletePhotoOwnerOnly(t *testing.T) {
	app := buildTestApp(t)
	ownerID, _ := registerTestUser(t, app, "owner@example.com")
	_, intruder := registerTestUser(t, app, "intruder@example.com")
	p := createTestPhoto(t, ownerID, "coveted")

	del := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/photos/%d", p), intruder, nil)
	if del.Code != http.StatusNotFound {
		t.Fatalf("foreign photo delete: status %d, want 404", del.Code)
	}

	var photo models.Photo
	if err := storage.DB.First(&photo, p).Error; err != nil {
		t.Fatalf("photo should survive a foreign delete: %v", err)
	}
}
