package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cardcrop/internal/detect"
	"cardcrop/internal/imaging"
	"cardcrop/internal/scaffold"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Handle --version and -v flags
	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("cardcrop %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage()
		return
	}

	// Progress and warnings go to stderr so stdout stays parseable
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	var err error
	switch os.Args[1] {
	case "auto":
		err = runAuto(os.Args[2:])
	case "manual":
		err = runManual(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "scaffold":
		err = runScaffold(os.Args[2:])
	case "rename":
		err = runRename(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Println("cardcrop - locate and crop cards photographed on marble or wood")
	fmt.Println()
	fmt.Println("Usage: cardcrop <command> [options] <files...>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  auto       Detect the card boundary and crop automatically")
	fmt.Println("  manual     Crop by explicit per-side amounts")
	fmt.Println("  info       Print image dimensions, aspect ratio, and file size")
	fmt.Println("  scaffold   Create the numbered tip folders with README stubs")
	fmt.Println("  rename     Migrate Day_NNN folders to the Tip_NNN layout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'cardcrop <command> -h' for command-specific flags.")
}

// consoleReporter prints pipeline progress and diagnostics to stderr.
type consoleReporter struct {
	verbose bool
}

func (r consoleReporter) Progress(stage string) {
	if r.verbose {
		log.Printf("  [%s]", stage)
	}
}

func (r consoleReporter) Warnf(format string, args ...interface{}) {
	log.Printf("  warning: "+format, args...)
}

func runAuto(args []string) error {
	fs := flag.NewFlagSet("auto", flag.ExitOnError)
	strategyName := fs.String("strategy", "auto", "mask strategy: brightness, edge, or auto")
	margin := fs.Float64("margin", detect.DefaultMarginPercent, "margin around the detected card, percent of its extent")
	maxDim := fs.Int("max-dim", 0, "override the working-resolution cap (0 keeps the strategy default)")
	output := fs.String("output", "", "output path (single input only; default adds a _cropped suffix)")
	overwrite := fs.Bool("overwrite", false, "write the crop back over the input file")
	verbose := fs.Bool("verbose", false, "print per-stage progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("no input files")
	}
	if *output != "" && len(files) > 1 {
		return fmt.Errorf("-output requires a single input file")
	}

	cache := imaging.NewImageCache()
	reporter := consoleReporter{verbose: *verbose}

	for _, path := range files {
		img, err := cache.Load(path)
		if err != nil {
			return err
		}

		strategy, bg, err := pickStrategy(*strategyName, img)
		if err != nil {
			return err
		}
		if *maxDim > 0 {
			switch s := strategy.(type) {
			case *detect.BrightnessStrategy:
				s.MaxWorkingDim = *maxDim
			case *detect.EdgeStrategy:
				s.MaxWorkingDim = *maxDim
			}
		}

		log.Printf("Processing %s", path)
		if bg != nil {
			log.Printf("  background: %s (lightness %.2f, %s)", bg.Kind, bg.Lightness, bg.Hex)
		}

		result := detect.DetectCard(img, detect.Options{
			Strategy:      strategy,
			MarginPercent: *margin,
			Reporter:      reporter,
		})
		if result.Fallback {
			log.Printf("  no boundary found, center crop used")
		}

		cropped, err := imaging.CropToBox(img, result.Box)
		if err != nil {
			return fmt.Errorf("cropping %s: %w", path, err)
		}

		dst := *output
		if dst == "" {
			if *overwrite {
				dst = path
			} else {
				dst = suffixPath(path, "_cropped")
			}
		}
		if err := imaging.SaveImage(cropped, dst); err != nil {
			return fmt.Errorf("saving %s: %w", dst, err)
		}

		b := cropped.Bounds()
		ratio := 0.0
		if b.Dx() > 0 {
			ratio = float64(b.Dy()) / float64(b.Dx())
		}
		log.Printf("  %s strategy, box %s", result.Strategy, result.Box)
		log.Printf("  saved %s (%dx%d, ratio %.2f)", dst, b.Dx(), b.Dy(), ratio)
	}
	return nil
}

// pickStrategy resolves the -strategy flag, classifying the background to
// choose between brightness (light marble) and edge (dark wood) when auto.
func pickStrategy(name string, img image.Image) (detect.Strategy, *imaging.BackgroundInfo, error) {
	switch name {
	case "brightness":
		return detect.NewBrightnessStrategy(), nil, nil
	case "edge":
		return detect.NewEdgeStrategy(), nil, nil
	case "auto":
		bg := imaging.ClassifyBackground(img)
		if bg.Kind == imaging.BackgroundDark {
			return detect.NewEdgeStrategy(), &bg, nil
		}
		return detect.NewBrightnessStrategy(), &bg, nil
	default:
		return nil, nil, fmt.Errorf("unknown strategy %q (want brightness, edge, or auto)", name)
	}
}

func runManual(args []string) error {
	fs := flag.NewFlagSet("manual", flag.ExitOnError)
	top := fs.Int("top", 0, "amount to remove from the top")
	bottom := fs.Int("bottom", 0, "amount to remove from the bottom")
	left := fs.Int("left", 0, "amount to remove from the left")
	right := fs.Int("right", 0, "amount to remove from the right")
	pixels := fs.Bool("pixels", false, "treat amounts as pixels instead of percent")
	output := fs.String("output", "", "output path (default adds a _cropped suffix)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("manual crops exactly one file")
	}
	path := fs.Arg(0)

	cache := imaging.NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		return err
	}

	var cropped image.Image
	if *pixels {
		cropped, err = imaging.CropPixels(img, *top, *bottom, *left, *right)
	} else {
		cropped, err = imaging.CropPercent(img, *top, *bottom, *left, *right)
	}
	if err != nil {
		return err
	}

	dst := *output
	if dst == "" {
		dst = suffixPath(path, "_cropped")
	}
	if err := imaging.SaveImage(cropped, dst); err != nil {
		return err
	}

	b := cropped.Bounds()
	log.Printf("saved %s (%dx%d)", dst, b.Dx(), b.Dy())
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no input files")
	}

	cache := imaging.NewImageCache()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, path := range fs.Args() {
		info, err := imaging.LoadImageInfo(cache, path)
		if err != nil {
			return err
		}
		report := struct {
			Path string `json:"path"`
			*imaging.ImageInfo
		}{Path: path, ImageInfo: info}
		if err := enc.Encode(report); err != nil {
			return err
		}
	}
	return nil
}

func runScaffold(args []string) error {
	fs := flag.NewFlagSet("scaffold", flag.ExitOnError)
	root := fs.String("root", ".", "directory to create the tip folders in")
	count := fs.Int("count", 100, "number of tip folders")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	if err := scaffold.CreateTipFolders(*root, *count); err != nil {
		return err
	}
	log.Printf("created %d tip folders under %s", *count, *root)
	return nil
}

func runRename(args []string) error {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	root := fs.String("root", ".", "directory holding the Day_NNN folders")
	if err := fs.Parse(args); err != nil {
		return err
	}
	renamed, err := scaffold.RenameDayFolders(*root)
	if err != nil {
		return err
	}
	log.Printf("renamed %d folders under %s", renamed, *root)
	return nil
}

// suffixPath inserts suffix before the file extension.
func suffixPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
