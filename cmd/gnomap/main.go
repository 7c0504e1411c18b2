package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"time"

	"github.com/pspoerri/geoconv/geod"
	"github.com/pspoerri/geoconv/gnomonic"
	"github.com/pspoerri/geoconv/internal/encode"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		centerLat   float64
		centerLon   float64
		size        int
		extent      float64
		step        float64
		format      string
		quality     int
		output      string
		showVersion bool
		verbose     bool
	)

	flag.Float64Var(&centerLat, "lat", 0, "Projection center latitude in degrees")
	flag.Float64Var(&centerLon, "lon", 0, "Projection center longitude in degrees")
	flag.IntVar(&size, "size", 1024, "Output image width and height in pixels")
	flag.Float64Var(&extent, "extent", 60, "Angular radius of the mapped region in degrees (< 90)")
	flag.Float64Var(&step, "step", 15, "Graticule spacing in degrees")
	flag.StringVar(&format, "format", "png", "Output image format: jpeg, png, webp")
	flag.IntVar(&quality, "quality", 85, "JPEG/WebP quality 1-100")
	flag.StringVar(&output, "o", "", "Output file (default: gnomap.<ext>)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose progress output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gnomap [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Render the graticule of a gnomonic projection centered on an\n")
		fmt.Fprintf(os.Stderr, "arbitrary point. Geodesics through the center appear as straight\n")
		fmt.Fprintf(os.Stderr, "lines; the map is valid out to (but not including) 90 degrees of\n")
		fmt.Fprintf(os.Stderr, "angular distance from the center.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("gnomap %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if math.Abs(centerLat) > 90 {
		log.Fatalf("gnomap: center latitude %g not in [-90, 90]", centerLat)
	}
	if extent <= 0 || extent >= 90 {
		log.Fatalf("gnomap: extent %g must be in (0, 90)", extent)
	}
	if step <= 0 {
		log.Fatalf("gnomap: graticule step %g must be positive", step)
	}
	if size < 16 {
		log.Fatalf("gnomap: image size %d too small", size)
	}

	enc, err := encode.NewEncoder(format, quality)
	if err != nil {
		log.Fatalf("gnomap: %v", err)
	}
	if output == "" {
		output = "gnomap" + enc.FileExtension()
	}

	start := time.Now()
	img := render(centerLat, centerLon, size, extent, step)
	if verbose {
		log.Printf("rendered %dx%d graticule in %v", size, size, time.Since(start).Round(time.Millisecond))
	}

	data, err := enc.Encode(img)
	if err != nil {
		log.Fatalf("gnomap: encoding %s: %v", enc.Format(), err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("gnomap: %v", err)
	}
	if verbose {
		log.Printf("wrote %s (%d bytes)", output, len(data))
	}
}

var (
	gridline   = color.RGBA{70, 70, 70, 255}
	equatorial = color.RGBA{200, 40, 40, 255}
	centerMark = color.RGBA{20, 60, 200, 255}
)

// render draws the graticule of a gnomonic projection centered on
// (lat0, lon0) into a square image. extent is the angular radius of the
// mapped region, step the graticule spacing, both in degrees.
func render(lat0, lon0 float64, size int, extent, step float64) *image.RGBA {
	proj := gnomonic.New(geod.NewEarthSphere())
	a := proj.Radius()
	// Planar half-width of the mapped region.
	half := a * math.Tan(extent*math.Pi/180)
	scale := float64(size/2) / half

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	plot := func(lat, lon float64, c color.RGBA) {
		x, y, _, rk := proj.Forward(lat0, lon0, lat, lon)
		if rk <= 0 || math.IsNaN(x) {
			return
		}
		px := size/2 + int(math.Round(x*scale))
		py := size/2 - int(math.Round(y*scale))
		if px < 0 || px >= size || py < 0 || py >= size {
			return
		}
		img.SetRGBA(px, py, c)
	}

	// Sample finely enough that projected curves read as lines at any size.
	sample := math.Min(0.02, 10.0/float64(size))

	// Meridians.
	for lon := -180.0; lon < 180; lon += step {
		for lat := -89.9; lat <= 89.9; lat += sample {
			plot(lat, lon, gridline)
		}
	}
	// Parallels, with the equator highlighted.
	for lat := -90 + step; lat < 90; lat += step {
		c := gridline
		if lat == 0 {
			c = equatorial
		}
		for lon := -180.0; lon < 180; lon += sample {
			plot(lat, lon, c)
		}
	}

	// Center cross.
	cx, cy := size/2, size/2
	for d := -4; d <= 4; d++ {
		if cx+d >= 0 && cx+d < size {
			img.SetRGBA(cx+d, cy, centerMark)
		}
		if cy+d >= 0 && cy+d < size {
			img.SetRGBA(cx, cy+d, centerMark)
		}
	}
	return img
}
