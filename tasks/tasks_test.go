package tasks

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"clazzyapi/dbhelper"
	"clazzyapi/models"
	"clazzyapi/test"

	"github.com/stretchr/testify/assert"
)

func redShirtPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestAnalyzeClothingTask(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	item := models.ClothingItem{
		Name:             "Test Shirt",
		OwnerID:          user.ID,
		Status:           "in_closet",
		ImageStatus:      "uploaded",
		ProcessingStatus: "pending",
		ImageKey:         test.NewRefString("clothing/test-shirt.png"),
	}
	db.Create(&item)

	mockContent := redShirtPNG(t)
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(mockContent)
	}))
	defer mockServer.Close()

	fakeTask, err := NewAnalyzeClothingTask(item.ID)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	awsServiceMock := &test.AWSProviderMock{MockUrl: mockServer.URL}

	err = HandleAnalyzeClothingTask(context.Background(), fakeTask, db, test.ClassifierMock{}, awsServiceMock, nil)
	assert.NoError(t, err)

	var updated models.ClothingItem
	err = db.Where("id = ?", item.ID).First(&updated).Error
	assert.NoError(t, err)
	assert.Equal(t, "completed", updated.ProcessingStatus)
	assert.Equal(t, "top", updated.ClothingType)
	assert.NotNil(t, updated.Confidence)
	assert.NotNil(t, updated.StyleDescription)
	assert.NotEmpty(t, updated.ColorHexes)
	assert.Equal(t, "#ff0000", updated.ColorHexes[0])
	assert.Equal(t, "Red", updated.ColorNames[0])
	assert.Len(t, updated.StyleEmbedding, 4)
	assert.NotNil(t, updated.LLMTotalTokenCount)
}

func TestAnalyzeClothingTaskSkipsDraftImage(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	item := models.ClothingItem{
		Name:             "Pending Shirt",
		OwnerID:          user.ID,
		Status:           "temporary",
		ImageStatus:      "draft",
		ProcessingStatus: "pending",
	}
	db.Create(&item)

	fakeTask, err := NewAnalyzeClothingTask(item.ID)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	err = HandleAnalyzeClothingTask(context.Background(), fakeTask, db, test.ClassifierMock{}, &test.AWSProviderMock{}, nil)
	assert.NoError(t, err)

	var updated models.ClothingItem
	db.Where("id = ?", item.ID).First(&updated)
	assert.Equal(t, "pending", updated.ProcessingStatus)
}

func TestAnalyzeClothingTaskFailCounter(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	// image key missing, download step has to fail
	item := models.ClothingItem{
		Name:             "Broken Shirt",
		OwnerID:          user.ID,
		Status:           "in_closet",
		ImageStatus:      "uploaded",
		ProcessingStatus: "pending",
	}
	db.Create(&item)

	fakeTask, err := NewAnalyzeClothingTask(item.ID)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	err = HandleAnalyzeClothingTask(context.Background(), fakeTask, db, test.ClassifierMock{}, &test.AWSProviderMock{}, nil)
	assert.Error(t, err)

	var updated models.ClothingItem
	db.Where("id = ?", item.ID).First(&updated)
	assert.Equal(t, 1, updated.ProcessRetryTimes)
	assert.NotNil(t, updated.ProcessErrorMessage)
}
