package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"clazzyapi/colorutil"
	"clazzyapi/models"
	"clazzyapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AnalyzeClothingPayload struct {
	ClothingID uint `json:"clothing_id"`
}

// NewAnalyzeClothingTask enqueues a clothing item for palette extraction and
// LLM classification.
func NewAnalyzeClothingTask(clothingID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(AnalyzeClothingPayload{ClothingID: clothingID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask("analyze:clothing", payload), nil
}

func getFileForClothing(awsService services.AWSServiceProvider, item models.ClothingItem) ([]byte, string, error) {
	bucketName := os.Getenv("R2_BUCKET_NAME")
	fmt.Printf("[Clothing: %v] Request presigned download url.. ", item.ID)
	if item.ImageKey == nil {
		return nil, "", fmt.Errorf("[Clothing: %v] Image key is nil", item.ID)
	}
	fileUrl, err := awsService.GetPresignedR2FileReadURL(context.TODO(), bucketName, *item.ImageKey)
	fileName := filepath.Base(*item.ImageKey)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error on getting presigned URL for file %s", item.ID, *item.ImageKey))
		return nil, fileName, err
	}
	fmt.Printf("Downloading... %s\n", fileUrl)
	fileBytes, err := services.ReadFileFromUrl(fileUrl)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error on downloading file %s: %v", item.ID, *item.ImageKey, err))
		return nil, fileName, err
	}

	return fileBytes, fileName, nil
}

func saveClothingProcessingFail(db *gorm.DB, item models.ClothingItem, msg string, shouldRetry bool) error {
	item.ProcessRetryTimes = item.ProcessRetryTimes + 1
	item.ProcessErrorMessage = &msg
	if !shouldRetry || item.ProcessRetryTimes >= 3 {
		item.ProcessingStatus = "failed"
	}
	tx := db.Save(&item)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Fail Clothing %v] Error on saving item for failed status", item.ID))
		return tx.Error
	}
	return nil
}

// HandleAnalyzeClothingTask downloads the item image, extracts its color
// palette, classifies the garment with the LLM and embeds its style
// description. The item is only recommendable once this completes.
func HandleAnalyzeClothingTask(
	ctx context.Context, t *asynq.Task, db *gorm.DB, classifier services.ClothingClassifierProvider,
	awsService services.AWSServiceProvider, fbApp *firebase.App) error {
	googleKey := os.Getenv("GOOGLE_API_KEY")
	if googleKey == "" {
		sentry.CaptureException(fmt.Errorf("[QUEUE] %s Google API key is not set", string(t.Payload())))
		return fmt.Errorf("[QUEUE] %s Google API key is not set", string(t.Payload()))
	}
	var payload AnalyzeClothingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Clothing: %v] Start Analysis\n", payload.ClothingID)
	var item models.ClothingItem
	res := db.First(&item, payload.ClothingID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving clothing item for analysis %v", payload.ClothingID))
		return res.Error
	}
	if item.ImageStatus != "uploaded" {
		fmt.Printf("[Clothing: %v] Image not uploaded yet, skipping\n", item.ID)
		return nil
	}

	item.ProcessingStatus = "analyzing"
	if tx := db.Save(&item); tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error on saving analyzing status: %v", item.ID, tx.Error))
		return tx.Error
	}

	fileBytes, fileName, err := getFileForClothing(awsService, item)
	if err != nil {
		fmt.Printf("[Clothing: %v] Error downloading image: %v\n", item.ID, err)
		saveClothingProcessingFail(db, item, "Couldn't download the item image", true)
		return err
	}

	colors, err := colorutil.ExtractColors(fileBytes)
	if err == nil && len(colors) == 0 {
		err = fmt.Errorf("no colors found in image")
	}
	if err != nil {
		fmt.Printf("[Clothing: %v] Error extracting colors: %v\n", item.ID, err)
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error extracting colors: %v", item.ID, err))
		saveClothingProcessingFail(db, item, "Couldn't read colors from the image", false)
		return err
	}
	fmt.Printf("[Clothing: %v] Extracted %d colors, dominant: %s\n", item.ID, len(colors), colors[0].Hex)

	tempFilePath, err := services.CreateTempFile(fileBytes, fileName)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error creating temp file: %v", item.ID, err))
		saveClothingProcessingFail(db, item, "Couldn't prepare the image for analysis", true)
		return err
	}
	defer os.Remove(tempFilePath)

	analysis, llmResponse, err := classifier.ClassifyClothing(tempFilePath, services.Flash25)
	if err != nil {
		fmt.Printf("[Clothing: %v] Error classifying: %v\n", item.ID, err)
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error classifying: %v", item.ID, err))
		saveClothingProcessingFail(db, item, "Couldn't analyze the item", true)
		return err
	}
	fmt.Printf("[Clothing: %v] Classified as %s (%.2f)\n", item.ID, analysis.ClothingType, analysis.Confidence)

	var embedding []float64
	if analysis.StyleDescription != "" {
		embedding, err = classifier.EmbedStyle(ctx, analysis.StyleDescription)
		if err != nil {
			// palette and type still make the item usable, keep going
			fmt.Printf("[Clothing: %v] Error embedding style: %v\n", item.ID, err)
			sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error embedding style: %v", item.ID, err))
		}
	}

	hexes := make(pq.StringArray, 0, len(colors))
	names := make(pq.StringArray, 0, len(colors))
	percentages := make(pq.Float64Array, 0, len(colors))
	for _, c := range colors {
		hexes = append(hexes, c.Hex)
		names = append(names, c.Name)
		percentages = append(percentages, c.Percentage)
	}

	item.ClothingType = analysis.ClothingType
	item.Confidence = &analysis.Confidence
	item.StyleDescription = services.StrPointer(analysis.StyleDescription)
	item.ColorHexes = hexes
	item.ColorNames = names
	item.ColorPercentages = percentages
	item.StyleEmbedding = pq.Float64Array(embedding)
	item.ProcessingStatus = "completed"
	item.ProcessErrorMessage = nil
	if llmResponse != nil {
		item.LLMModel = services.StrPointer(services.Flash25.String())
		item.LLMInputTokenCount = services.Int32Pointer(llmResponse.InputTokenCount)
		item.LLMOutputTokenCount = services.Int32Pointer(llmResponse.OutputTokenCount)
		item.LLMTotalTokenCount = services.Int32Pointer(llmResponse.TotalTokenCount)
		item.LLMThoughtsTokenCount = services.Int32Pointer(llmResponse.ThoughtsTokenCount)
	}

	if tx := db.Save(&item); tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Clothing: %v] Error on saving analysis results: %v", item.ID, tx.Error))
		return tx.Error
	}

	fmt.Printf("[Clothing: %v] Analysis completed\n", item.ID)
	if fbApp != nil {
		services.SendNotification(fbApp, db, item.OwnerID, "Item ready", fmt.Sprintf("%s is ready for outfit suggestions", item.Name), map[string]string{
			"clothing_id": fmt.Sprintf("%d", item.ID),
			"type":        "clothing_analyzed",
		})
	}
	return nil
}
