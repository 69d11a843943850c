package controllers

import (
	"fmt"
	"net/http"

	"clazzyapi/colorutil"
	"clazzyapi/models"
	"clazzyapi/recommender"
	"clazzyapi/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type RecommendController struct {
	Engine   *recommender.Engine
	URLCache services.URLCacheServiceProvider
}

func (controller *RecommendController) RecommendRoutes(g *echo.Group) {
	g.POST("/outfits", controller.RecommendOutfits)
	g.GET("/occasions", controller.ListOccasions)
}

// ColorRoutes are public helpers, no wardrobe needed.
func (controller *RecommendController) ColorRoutes(g *echo.Group) {
	g.GET("/schemes", controller.ColorSchemes)
	g.GET("/harmony", controller.ColorHarmony)
}

// RecommendOutfits assembles outfits from the user's analyzed closet items.
func (controller *RecommendController) RecommendOutfits(c echo.Context) error {
	var req models.RecommendIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Occasion == "" {
		req.Occasion = recommender.DefaultOccasion
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var clothes []models.ClothingItem
	if err := db.Where("owner_id = ? AND status = ? AND processing_status = ?", user.ID, "in_closet", "completed").Find(&clothes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch clothes"})
	}

	items := make([]*recommender.Item, 0, len(clothes))
	imageKeys := make(map[string]string, len(clothes))
	for i := range clothes {
		item := clothes[i].RecommenderItem()
		items = append(items, item)
		if clothes[i].ImageKey != nil {
			imageKeys[item.ID] = *clothes[i].ImageKey
		}
	}

	outfits := controller.Engine.Recommend(items, req.Occasion, req.MaxOutfits, req.ItemsPerOutfit)

	// attach read URLs so clients can render outfits directly
	ctx := c.Request().Context()
	for oi := range outfits {
		for _, item := range outfits[oi].Items {
			key, ok := imageKeys[item.ID]
			if !ok {
				continue
			}
			url, err := controller.URLCache.GetReadURL(ctx, key)
			if err != nil {
				fmt.Printf("[Recommend] failed to presign image for item %v: %v\n", item.ID, err)
				continue
			}
			item.ImageURL = url
		}
	}

	return c.JSON(http.StatusOK, models.RecommendOut{
		Occasion: req.Occasion,
		Outfits:  outfits,
	})
}

func (controller *RecommendController) ListOccasions(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"occasions": controller.Engine.Occasions(),
	})
}

// ColorSchemes returns the harmony palettes generated from a base color.
func (controller *RecommendController) ColorSchemes(c echo.Context) error {
	color := c.QueryParam("color")
	if color == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide a color query parameter"})
	}
	schemes, err := colorutil.Schemes(color)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide the color as #rrggbb"})
	}
	name, _ := colorutil.NameHex(color)
	return c.JSON(http.StatusOK, echo.Map{
		"color":   color,
		"name":    name,
		"schemes": schemes,
	})
}

// ColorHarmony scores how well two colors work together.
func (controller *RecommendController) ColorHarmony(c echo.Context) error {
	colorA := c.QueryParam("a")
	colorB := c.QueryParam("b")
	if colorA == "" || colorB == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide both a and b color query parameters"})
	}
	score, err := colorutil.Harmony(colorA, colorB)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide the colors as #rrggbb"})
	}
	scheme, err := colorutil.SchemeType(colorA, colorB)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide the colors as #rrggbb"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"score":  score,
		"scheme": scheme,
	})
}
