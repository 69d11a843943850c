package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"clazzyapi/dbhelper"
	"clazzyapi/models"
	"clazzyapi/recommender"
	"clazzyapi/test"

	"github.com/stretchr/testify/assert"
)

func TestCreateClothing(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())
	user := test.FakeUser(db)

	param := CreateClothingIn{
		Name:         "Summer tee",
		FileName:     test.NewRefString("shirt.png"),
		ClothingType: test.NewRefString("top"),
		AddToCloset:  BoolPointer(true),
	}
	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", UIntToStr(user.ID), param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp ClothingCreatedResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)

	assert.Equal(t, "Summer tee", resp.ClothingResponse.Name)
	assert.Equal(t, "top", resp.ClothingResponse.ClothingType)
	assert.Equal(t, "in_closet", resp.ClothingResponse.Status)
	assert.Equal(t, "pending", resp.ClothingResponse.ProcessingStatus)
	expectedUrl := fmt.Sprintf("https://fakebucketurl.com/clothes/%v/shirt.png", user.ID)
	assert.Equal(t, expectedUrl, resp.FileUploadUrl)

	var clothing models.ClothingItem
	db.First(&clothing, resp.ClothingResponse.ID)
	assert.Equal(t, user.ID, clothing.OwnerID)
	assert.Equal(t, "draft", clothing.ImageStatus)
	assert.Equal(t, "pending", clothing.ProcessingStatus)
	assert.Equal(t, fmt.Sprintf("clothes/%v/shirt.png", user.ID), *clothing.ImageKey)
}

func TestCreateClothingRejectsUnsupportedFile(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())
	user := test.FakeUser(db)

	param := CreateClothingIn{
		Name:        "Scanned page",
		FileName:    test.NewRefString("shirt.pdf"),
		AddToCloset: BoolPointer(false),
	}
	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", UIntToStr(user.ID), param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var count int64
	db.Model(&models.ClothingItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListClothesGroupsByType(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	mockUrl := "https://cachedread.example.com/shirt.png"
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{MockUrl: mockUrl}, recommender.New())
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")

	db.Create(&models.ClothingItem{
		Name: "White tee", ClothingType: "top", OwnerID: user.ID,
		Status: "in_closet", ImageStatus: "uploaded", ProcessingStatus: "completed",
		ImageKey: test.NewRefString(fmt.Sprintf("clothes/%v/tee.png", user.ID)),
	})
	db.Create(&models.ClothingItem{
		Name: "Jeans", ClothingType: "bottom", OwnerID: user.ID,
		Status: "in_closet", ImageStatus: "uploaded", ProcessingStatus: "completed",
		ImageKey: test.NewRefString(fmt.Sprintf("clothes/%v/jeans.png", user.ID)),
	})
	db.Create(&models.ClothingItem{
		Name: "Someone else's dress", ClothingType: "dress", OwnerID: other.ID,
		Status: "in_closet", ImageStatus: "uploaded", ProcessingStatus: "completed",
	})

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp WardrobeListResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)

	assert.Len(t, resp.Tops, 1)
	assert.Len(t, resp.Bottoms, 1)
	assert.Len(t, resp.Dresses, 0)
	assert.Equal(t, "White tee", resp.Tops[0].Name)
	assert.Equal(t, mockUrl, *resp.Tops[0].Uri)
	assert.Equal(t, mockUrl, *resp.Bottoms[0].Uri)
}

func TestDeleteClothing(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")

	clothing := models.ClothingItem{
		Name: "Old shirt", ClothingType: "top", OwnerID: user.ID,
		Status: "in_closet", ImageStatus: "uploaded", ProcessingStatus: "completed",
	}
	db.Create(&clothing)

	// other users cannot touch the item
	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/wardrobe/%v", clothing.ID), UIntToStr(other.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/wardrobe/%v", clothing.ID), UIntToStr(user.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&models.ClothingItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMarkUploadedNotFound(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/wardrobe/99999/uploaded", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
