package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"clazzyapi/models"
	"clazzyapi/services"
	"clazzyapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CreateClothingIn struct {
	Name         string  `json:"name" validate:"omitempty,max=100"`
	FileName     *string `json:"file_name" validate:"required,max=200"`
	ClothingType *string `json:"clothing_type" validate:"omitempty,oneof=top bottom dress shoes blazer other"`
	AddToCloset  *bool   `json:"add_to_closet" validate:"required"`
}

type ClothingResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	ClothingType     string    `json:"clothing_type"`
	Status           string    `json:"status"`
	ProcessingStatus string    `json:"processing_status"`
	Confidence       *float64  `json:"confidence,omitempty"`
	StyleDescription *string   `json:"style_description,omitempty"`
	ColorHexes       []string  `json:"color_hexes"`
	ColorNames       []string  `json:"color_names"`
	ColorPercentages []float64 `json:"color_percentages"`
	Uri              *string   `json:"uri,omitempty"`
	CreatedAt        string    `json:"created_at"`
	UpdatedAt        string    `json:"updated_at"`
}

type ClothingCreatedResponse struct {
	ClothingResponse ClothingResponse `json:"clothing"`
	FileUploadUrl    string           `json:"file_upload_url"`
}

type WardrobeListResponse struct {
	Tops    []ClothingResponse `json:"tops"`
	Bottoms []ClothingResponse `json:"bottoms"`
	Dresses []ClothingResponse `json:"dresses"`
	Shoes   []ClothingResponse `json:"shoes"`
	Blazers []ClothingResponse `json:"blazers"`
	Other   []ClothingResponse `json:"other"`
}

type WardrobeController struct {
	AWSService  services.AWSServiceProvider
	FirebaseApp *firebase.App
	URLCache    services.URLCacheServiceProvider
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateClothing)
	g.POST("/:clothingId/uploaded", controller.MarkUploaded)
	g.GET("/list", controller.ListClothes)
	g.DELETE("/:clothingId", controller.DeleteClothing)
}

func (controller *WardrobeController) CreateClothing(c echo.Context) error {
	var req CreateClothingIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	if req.FileName == nil || *req.FileName == "" {
		sentry.CaptureException(fmt.Errorf("image was not provided when creating clothing %s, user %v", req.Name, user.ID))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, it seems image was not provided, please try again"})
	}
	if !services.IsAllowedImageFile(*req.FileName) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, this image format is not supported"})
	}

	clothingType := "other"
	if req.ClothingType != nil {
		clothingType = *req.ClothingType
	}
	status := "temporary"
	if req.AddToCloset != nil && *req.AddToCloset {
		status = "in_closet"
	}
	clothing := models.ClothingItem{
		Name:             req.Name,
		ClothingType:     clothingType,
		OwnerID:          user.ID,
		Status:           status,
		ImageStatus:      "draft",
		ProcessingStatus: "pending",
	}
	var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
	safeFileName := fmt.Sprintf("clothes/%v/%s", user.ID, *req.FileName)

	uploadUrl, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
	clothing.ImageKey = &safeFileName
	if presignErr != nil {
		log.Printf("Unable to presign generate for %s!, %s", clothing.Name, presignErr)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Error while creating clothing with attachment",
		})
	}
	if err := db.Create(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	response := ClothingCreatedResponse{
		ClothingResponse: ClothingResponse{
			ID:               clothing.ID,
			Name:             clothing.Name,
			ClothingType:     clothing.ClothingType,
			Status:           clothing.Status,
			ProcessingStatus: clothing.ProcessingStatus,
			CreatedAt:        clothing.CreatedAt.Format("2006-01-02T15:04:05Z"),
			UpdatedAt:        clothing.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		},
		FileUploadUrl: uploadUrl,
	}

	return c.JSON(http.StatusCreated, response)
}

// MarkUploaded is called by the client after the presigned PUT succeeds. It
// flips the image status and queues the analysis task.
func (controller *WardrobeController) MarkUploaded(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	var clothingId uint
	if err := echo.PathParamsBinder(c).Uint("clothingId", &clothingId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	var clothing models.ClothingItem
	result := db.Where("id = ? AND owner_id = ?", clothingId, user.ID).First(&clothing)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing item not found"})
	}

	clothing.ImageStatus = "uploaded"
	clothing.ProcessingStatus = "pending"
	if err := db.Save(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update clothing status, please try again"})
	}

	task, err := tasks.NewAnalyzeClothingTask(clothing.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process clothing, please try again"})
	}
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("analyze"))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process clothing, please try again"})
	}
	fmt.Println("[Queue] Analyze clothing task submitted, Clothing ID: ", clothing.ID, " Task ID: ", info.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"message":           "queued",
		"processing_status": clothing.ProcessingStatus,
	})
}

// populatePresignedClothingImages enriches raw clothing models with presigned
// read URLs concurrently, falling back to a direct presign if the cache fails.
func (controller *WardrobeController) populatePresignedClothingImages(ctx context.Context, clothes []models.ClothingItem) []ClothingResponse {
	if len(clothes) == 0 {
		return []ClothingResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]ClothingResponse, len(clothes))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, clothingItem := range clothes {
		wg.Add(1)
		go func(index int, item models.ClothingItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageKey != nil && *item.ImageKey != "" {
				objectKey := *item.ImageKey

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			processedResponses[index] = ClothingResponse{
				ID:               item.ID,
				Name:             item.Name,
				ClothingType:     item.ClothingType,
				Status:           item.Status,
				ProcessingStatus: item.ProcessingStatus,
				Confidence:       item.Confidence,
				StyleDescription: item.StyleDescription,
				ColorHexes:       []string(item.ColorHexes),
				ColorNames:       []string(item.ColorNames),
				ColorPercentages: []float64(item.ColorPercentages),
				CreatedAt:        item.CreatedAt.Format("2006-01-02T15:04:05Z"),
				UpdatedAt:        item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
				Uri:              &imageUrl,
			}
		}(i, clothingItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *WardrobeController) ListClothes(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var clothes []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Find(&clothes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch clothes"})
	}
	processedResponses := controller.populatePresignedClothingImages(c.Request().Context(), clothes)

	response := WardrobeListResponse{
		Tops:    []ClothingResponse{},
		Bottoms: []ClothingResponse{},
		Dresses: []ClothingResponse{},
		Shoes:   []ClothingResponse{},
		Blazers: []ClothingResponse{},
		Other:   []ClothingResponse{},
	}

	for _, resp := range processedResponses {
		switch resp.ClothingType {
		case "top":
			response.Tops = append(response.Tops, resp)
		case "bottom":
			response.Bottoms = append(response.Bottoms, resp)
		case "dress":
			response.Dresses = append(response.Dresses, resp)
		case "shoes":
			response.Shoes = append(response.Shoes, resp)
		case "blazer":
			response.Blazers = append(response.Blazers, resp)
		default:
			response.Other = append(response.Other, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}

func (controller *WardrobeController) DeleteClothing(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var clothingId uint
	if err := echo.PathParamsBinder(c).Uint("clothingId", &clothingId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	result := db.Where("id = ? AND owner_id = ?", clothingId, user.ID).Delete(&models.ClothingItem{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete clothing item"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing item not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "deleted",
	})
}
