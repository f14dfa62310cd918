package composite

import (
	"image"
	"runtime"
	"sync"

	"github.com/user/tapestudio/pkg/raster"
)

const (
	// bwThreshold splits light from dark in BlackAndWhite, compared against
	// the channel sum so fractional averages are not floored.
	bwThreshold = 3 * 128
	// maskAlphaFloor is the alpha at or below which mask pixels are left untouched.
	maskAlphaFloor = 10
	// maskInkCeiling is the channel sum below which a mask pixel counts as ink.
	maskInkCeiling = 3 * 240

	// colorCodeDark and colorCodeLight bound the channel ranges used by ColorCode.
	colorCodeDark  = 100
	colorCodeLight = 200
)

// BlackAndWhite reduces src to pure black and white by average luminance,
// preserving alpha. It is idempotent.
func BlackAndWhite(src *raster.Raster) *raster.Raster {
	return mapPixels(src, func(p []uint8) {
		v := uint8(0)
		if channelSum(p) > bwThreshold {
			v = 255
		}
		p[0], p[1], p[2] = v, v, v
	})
}

// ColorCode recolors the visible pixels of src: dark pixels (every channel
// below 100) become blue and mid grays (every channel strictly between 100
// and 200) become red. Other pixels are kept.
func ColorCode(src *raster.Raster) *raster.Raster {
	return mapPixels(src, func(p []uint8) {
		if p[3] == 0 {
			return
		}
		r, g, b := p[0], p[1], p[2]
		switch {
		case r < colorCodeDark && g < colorCodeDark && b < colorCodeDark:
			p[0], p[1], p[2] = 0, 0, 255
		case between(r) && between(g) && between(b):
			p[0], p[1], p[2] = 255, 0, 0
		}
	})
}

func between(v uint8) bool {
	return v > colorCodeDark && v < colorCodeLight
}

// monochromeMask turns the visible content of src into a black mark.
// Near-white pixels become transparent; faint pixels are left as they are.
func monochromeMask(src *raster.Raster) *raster.Raster {
	return mapPixels(src, func(p []uint8) {
		if p[3] <= maskAlphaFloor {
			return
		}
		if channelSum(p) < maskInkCeiling {
			p[0], p[1], p[2] = 0, 0, 0
		} else {
			p[3] = 0
		}
	})
}

func channelSum(p []uint8) int {
	return int(p[0]) + int(p[1]) + int(p[2])
}

// mapPixels applies fn to every pixel of a copy of src and publishes the copy.
// Row bands are processed by a pool of workers.
func mapPixels(src *raster.Raster, fn func(p []uint8)) *raster.Raster {
	img := &image.NRGBA{Pix: src.Pix(), Stride: 4 * src.Width(), Rect: src.Bounds()}
	forEachBand(img.Rect.Dy(), runtime.NumCPU(), func(y0, y1 int) {
		row := img.Pix[y0*img.Stride : y1*img.Stride]
		for i := 0; i < len(row); i += 4 {
			fn(row[i : i+4 : i+4])
		}
	})
	return raster.Wrap(img).Publish()
}

// forEachBand splits rows [0,height) into bands and runs fn on each from a
// pool of numWorkers goroutines.
func forEachBand(height, numWorkers int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	const bandHeight = 64

	jobs := make(chan int, (height+bandHeight-1)/bandHeight)
	for y := 0; y < height; y += bandHeight {
		jobs <- y
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y0 := range jobs {
				fn(y0, min(y0+bandHeight, height))
			}
		}()
	}
	wg.Wait()
}
