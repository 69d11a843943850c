package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clazzyapi/dbhelper"
	"clazzyapi/models"
	"clazzyapi/recommender"
	"clazzyapi/test"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func analyzedClothing(ownerId uint, name, clothingType, hex, colorName string) models.ClothingItem {
	return models.ClothingItem{
		Name:             name,
		ClothingType:     clothingType,
		OwnerID:          ownerId,
		Status:           "in_closet",
		ImageStatus:      "uploaded",
		ProcessingStatus: "completed",
		ImageKey:         test.NewRefString("clothes/" + name + ".png"),
		ColorHexes:       pq.StringArray{hex},
		ColorNames:       pq.StringArray{colorName},
		ColorPercentages: pq.Float64Array{100},
		StyleEmbedding:   pq.Float64Array{0.1, 0.2, 0.3, 0.4},
	}
}

func TestRecommendOutfits(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	mockUrl := "https://cachedread.example.com/item.png"
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{MockUrl: mockUrl}, recommender.New())
	user := test.FakeUser(db)

	top := analyzedClothing(user.ID, "White tee", "top", "#ffffff", "White")
	bottom := analyzedClothing(user.ID, "Black jeans", "bottom", "#000000", "Black")
	db.Create(&top)
	db.Create(&bottom)

	// items still being analyzed never reach the engine
	pending := analyzedClothing(user.ID, "Blurry jacket", "blazer", "#ff0000", "Red")
	pending.ProcessingStatus = "analyzing"
	db.Create(&pending)

	param := models.RecommendIn{MaxOutfits: 5}
	req := test.NewJSONAuthRequest("POST", "/recommend/outfits", UIntToStr(user.ID), param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp models.RecommendOut
	json.Unmarshal(rec.Body.Bytes(), &resp)

	assert.Equal(t, "casual", resp.Occasion)
	assert.GreaterOrEqual(t, len(resp.Outfits), 1)
	outfit := resp.Outfits[0]
	assert.Equal(t, 2, outfit.TotalItems)
	assert.Greater(t, outfit.Score, 0.5)
	for _, item := range outfit.Items {
		assert.NotEqual(t, "blazer", string(item.Type))
		assert.Equal(t, mockUrl, item.ImageURL)
	}
}

func TestRecommendOutfitsEmptyCloset(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())
	user := test.FakeUser(db)

	param := models.RecommendIn{Occasion: "formal"}
	req := test.NewJSONAuthRequest("POST", "/recommend/outfits", UIntToStr(user.ID), param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.RecommendOut
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "formal", resp.Occasion)
	assert.Len(t, resp.Outfits, 0)
}

func TestListOccasions(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/recommend/occasions", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Occasions []string `json:"occasions"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Contains(t, resp.Occasions, "casual")
	assert.Contains(t, resp.Occasions, "formal")
}

func TestColorSchemes(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())

	req := httptest.NewRequest("GET", "/colors/schemes?color=%23ff0000", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Color   string              `json:"color"`
		Name    string              `json:"name"`
		Schemes map[string][]string `json:"schemes"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "#ff0000", resp.Color)
	assert.Equal(t, "Red", resp.Name)
	assert.NotEmpty(t, resp.Schemes["complementary"])
}

func TestColorSchemesRequiresColor(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())

	req := httptest.NewRequest("GET", "/colors/schemes", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest("GET", "/colors/schemes?color=notacolor", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColorHarmony(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, recommender.New())

	req := httptest.NewRequest("GET", "/colors/harmony?a=%23ff0000&b=%2300ffff", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Score  float64 `json:"score"`
		Scheme string  `json:"scheme"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "complementary", resp.Scheme)
	assert.Greater(t, resp.Score, 0.0)
}
