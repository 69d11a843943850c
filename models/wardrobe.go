package models

import (
	"strconv"

	"clazzyapi/colorutil"
	"clazzyapi/recommender"

	"github.com/lib/pq"
)

type ClothingItem struct {
	JsonModel
	Name         string      `json:"name"`
	ClothingType string      `json:"clothing_type"` // top, bottom, dress, shoes, blazer, other
	Owner        UserAccount `json:"-"`
	OwnerID      uint        `json:"-"`

	Status              string  `json:"status"`            // temporary, in_closet
	ImageStatus         string  `json:"image_status"`      // draft, uploaded
	ProcessingStatus    string  `json:"processing_status"` // pending, analyzing, completed, failed
	ProcessRetryTimes   int     `json:"process_retry_times"`
	ProcessErrorMessage *string `json:"process_error_message"`
	ImageKey            *string `json:"-"`

	// analysis results
	Confidence       *float64 `json:"confidence"`
	StyleDescription *string  `gorm:"type:text" json:"style_description"`

	// palette extracted from the item image, aligned by index
	ColorHexes        pq.StringArray  `gorm:"type:text[]" json:"color_hexes"`
	ColorNames        pq.StringArray  `gorm:"type:text[]" json:"color_names"`
	ColorPercentages  pq.Float64Array `gorm:"type:float8[]" json:"color_percentages"`
	StyleEmbedding    pq.Float64Array `gorm:"type:float8[]" json:"-"`

	LLMModel              *string `json:"-"`
	LLMInputTokenCount    *int32  `json:"-"`
	LLMOutputTokenCount   *int32  `json:"-"`
	LLMTotalTokenCount    *int32  `json:"-"`
	LLMThoughtsTokenCount *int32  `json:"-"`
}

// Colors rebuilds the palette from the stored parallel arrays. Entries
// beyond the shortest array are dropped.
func (c *ClothingItem) Colors() []colorutil.ColorInfo {
	n := len(c.ColorHexes)
	if len(c.ColorNames) < n {
		n = len(c.ColorNames)
	}
	if len(c.ColorPercentages) < n {
		n = len(c.ColorPercentages)
	}
	colors := make([]colorutil.ColorInfo, 0, n)
	for i := 0; i < n; i++ {
		hex := c.ColorHexes[i]
		r, g, b, err := colorutil.HexToRGB(hex)
		if err != nil {
			continue
		}
		colors = append(colors, colorutil.ColorInfo{
			Hex:        hex,
			RGB:        [3]int{r, g, b},
			Name:       c.ColorNames[i],
			Percentage: c.ColorPercentages[i],
		})
	}
	return colors
}

func (c *ClothingItem) RecommenderItem() *recommender.Item {
	return &recommender.Item{
		ID:        strconv.FormatUint(uint64(c.ID), 10),
		Type:      recommender.ParseClothingType(c.ClothingType),
		Colors:    c.Colors(),
		Embedding: []float64(c.StyleEmbedding),
	}
}

type ClothingCreateIn struct {
	Name     string `json:"name" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
}

type ClothingCreateOut struct {
	Id        uint   `json:"id"`
	UploadURL string `json:"upload_url"`
}

type ClothingOut struct {
	ClothingItem
	ImageURL *string `json:"image_url"`
}

type RecommendIn struct {
	Occasion       string `json:"occasion"`
	MaxOutfits     int    `json:"max_outfits"`
	ItemsPerOutfit int    `json:"items_per_outfit"`
}

type RecommendOut struct {
	Occasion string              `json:"occasion"`
	Outfits  []recommender.Outfit `json:"outfits"`
}
