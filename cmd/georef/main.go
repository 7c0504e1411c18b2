package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/pspoerri/geoconv/georef"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		decode      bool
		precision   int
		corner      bool
		geojsonPath string
		showVersion bool
	)

	flag.BoolVar(&decode, "decode", false, "Decode GEOREF codes back to latitude/longitude")
	flag.IntVar(&precision, "precision", 2, "Encoding precision: -1 (15 deg tile), 0 (1 deg cell), 2-11 (sub-minute)")
	flag.BoolVar(&corner, "corner", false, "Decode to the cell's southwest corner instead of its center")
	flag.StringVar(&geojsonPath, "geojson", "", "Tag Point features of a GeoJSON file with a \"georef\" property (\"-\" for stdin)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: georef [flags] <lat> <lon> [<lat> <lon> ...]\n")
		fmt.Fprintf(os.Stderr, "       georef -decode [flags] <code> [<code> ...]\n")
		fmt.Fprintf(os.Stderr, "       georef -geojson <file.geojson>\n\n")
		fmt.Fprintf(os.Stderr, "Convert between latitude/longitude and World Geographic Reference\n")
		fmt.Fprintf(os.Stderr, "System (GEOREF) codes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("georef %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if geojsonPath != "" {
		if err := tagGeoJSON(geojsonPath, precision); err != nil {
			log.Fatalf("georef: %v", err)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if decode {
		for _, code := range args {
			lat, lon, prec, err := georef.Decode(code, !corner)
			if err != nil {
				log.Fatalf("georef: %v", err)
			}
			fmt.Printf("%s\t%.10g\t%.10g\tprec=%d\n", code, lat, lon, prec)
		}
		return
	}

	if len(args)%2 != 0 {
		log.Fatalf("georef: encoding needs lat/lon pairs, got %d arguments", len(args))
	}
	for i := 0; i < len(args); i += 2 {
		lat, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			log.Fatalf("georef: bad latitude %q: %v", args[i], err)
		}
		lon, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			log.Fatalf("georef: bad longitude %q: %v", args[i+1], err)
		}
		code, err := georef.Encode(lat, lon, precision)
		if err != nil {
			log.Fatalf("georef: %v", err)
		}
		fmt.Printf("%g\t%g\t%s\n", lat, lon, code)
	}
}

// tagGeoJSON reads a GeoJSON FeatureCollection, adds a "georef" property to
// every Point feature, and writes the result to stdout.
func tagGeoJSON(path string, precision int) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		code, err := georef.Encode(pt.Lat(), pt.Lon(), precision)
		if err != nil {
			return fmt.Errorf("feature at (%g, %g): %w", pt.Lat(), pt.Lon(), err)
		}
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		f.Properties["georef"] = code
	}

	out, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
