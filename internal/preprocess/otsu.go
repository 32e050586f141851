package preprocess

import "image"

// Histogram counts the pixels of g at each of the 256 gray levels.
func Histogram(g *image.Gray) [256]int {
	var hist [256]int
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.Pix[g.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			hist[row[x]]++
		}
	}
	return hist
}

// OtsuThreshold picks the gray level that maximizes the between-class
// variance of the background and foreground split, which is equivalent to
// minimizing the intra-class variance. Pixels at or below the returned level
// form the dark class.
//
// Ties keep the lowest level. An image with a single gray level yields 0.
func OtsuThreshold(g *image.Gray) uint8 {
	hist := Histogram(g)

	total := 0
	var sum float64
	for level, count := range hist {
		total += count
		sum += float64(level * count)
	}

	var (
		weightB int
		sumB    float64
		best    float64
		t       int
	)
	for level := 0; level < 256; level++ {
		weightB += hist[level]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(level * hist[level])

		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		diff := meanB - meanF
		between := float64(weightB) * float64(weightF) * diff * diff
		if between > best {
			best = between
			t = level
		}
	}
	return uint8(t)
}
