package colorutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/rand"
	"sort"
)

// ColorInfo is one dominant color of an image, percentage is its share of
// the sampled pixels. Lists of ColorInfo are always sorted by descending
// percentage.
type ColorInfo struct {
	Hex        string  `json:"hex"`
	RGB        [3]int  `json:"rgb"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

const (
	extractColorCount = 5
	maxSamples        = 4000
	maxIterations     = 50
	convergence       = 1.0
	kmeansSeed        = 42
)

type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ExtractColors finds the dominant colors of an encoded image via k-means
// clustering. Shadows, highlights and gray background pixels are filtered
// out before clustering when enough colored pixels remain.
func ExtractColors(imgBytes []byte) ([]ColorInfo, error) {
	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}
	pixels = filterPixels(pixels)

	k := extractColorCount
	if len(pixels) < k {
		k = len(pixels)
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	centroids, weights := kmeans(rng, pixels, k)

	result := make([]ColorInfo, 0, k)
	for i, c := range centroids {
		r, g, b := int(c.R), int(c.G), int(c.B)
		result = append(result, ColorInfo{
			Hex:        RGBToHex(r, g, b),
			RGB:        [3]int{r, g, b},
			Name:       Name(r, g, b),
			Percentage: weights[i] * 100,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Percentage > result[j].Percentage
	})
	return result, nil
}

// DominantColor returns the single most dominant color as hex, falling back
// to gray when nothing can be extracted.
func DominantColor(imgBytes []byte) string {
	colors, err := ExtractColors(imgBytes)
	if err != nil || len(colors) == 0 {
		return "#808080"
	}
	return colors[0].Hex
}

func samplePixels(img image.Image) []point3D {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	step := 1
	if total > maxSamples {
		step = int(math.Sqrt(float64(total) / float64(maxSamples)))
		if step < 1 {
			step = 1
		}
	}

	pixels := make([]point3D, 0, maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, point3D{
				R: float64(r >> 8),
				G: float64(g >> 8),
				B: float64(b >> 8),
			})
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

// filterPixels drops shadows, highlights and near-gray pixels so the
// clusters land on the garment, not the backdrop. Falls back to looser
// filters when too few pixels survive.
func filterPixels(pixels []point3D) []point3D {
	byBrightness := make([]point3D, 0, len(pixels))
	byColor := make([]point3D, 0, len(pixels))
	for _, p := range pixels {
		mean := (p.R + p.G + p.B) / 3
		if mean <= 15 || mean >= 240 {
			continue
		}
		byBrightness = append(byBrightness, p)

		variance := ((p.R-mean)*(p.R-mean) + (p.G-mean)*(p.G-mean) + (p.B-mean)*(p.B-mean)) / 3
		if math.Sqrt(variance) > 10 {
			byColor = append(byColor, p)
		}
	}

	if len(byColor) > 500 {
		return byColor
	}
	if len(byBrightness) > 200 {
		return byBrightness
	}
	return pixels
}

func kmeans(rng *rand.Rand, points []point3D, k int) ([]point3D, []float64) {
	centroids := seedCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculate(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids
		if totalMovement/float64(k) < convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}
	return centroids, weights
}

// seedCentroids picks initial centroids with k-means++: each next centroid
// is chosen with probability proportional to squared distance from the
// nearest existing one.
func seedCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := point.distance(c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		if total == 0 {
			// Remaining points coincide with existing centroids.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{last.R + 0.1, last.G + 0.1, last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}
	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

func recalculate(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
