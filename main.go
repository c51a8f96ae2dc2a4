// Screengrab captures a still image of a display and keeps a local archive
// of what was taken. The capture core is the screenshot package; everything
// here is glue around it: PNG encoding, file naming, and the archive CLI.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/screengrab/screengrab/archive"
	"github.com/screengrab/screengrab/core"
	"github.com/screengrab/screengrab/screenshot"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		mode        = flag.String("mode", "capture", "Operation mode: capture, list, show, export, or import")
		config      = flag.String("config", "", "Configuration file path")
		display     = flag.Int("display", -1, "Display index to capture (-1 uses the configured default)")
		output      = flag.String("output", "", "Output file path (capture) or manifest path (export/import)")
		id          = flag.String("id", "", "Capture record ID (show mode)")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Show version information")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("screengrab v%s\nBuild: %s\nCommit: %s\n", version, buildTime, gitCommit)
		os.Exit(0)
	}

	logger := core.NewLogger(*debug)
	defer logger.Close()

	cfg, err := core.LoadConfig(*config)
	if err != nil {
		logger.Warn("Using default configuration: %v", err)
		cfg = core.DefaultConfig()
	}
	if cfg.Logging.Debug {
		logger = core.NewLogger(true)
	}
	if cfg.Logging.File != "" {
		if err := logger.SetFile(cfg.Logging.File); err != nil {
			logger.Warn("Log file unavailable: %v", err)
		}
	}

	store, err := archive.Open(cfg.Archive.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Archive unavailable: %v", err)
	}

	switch *mode {
	case "capture":
		screen := *display
		if screen < 0 {
			screen = cfg.Capture.Display
		}
		runCapture(logger, cfg, store, screen, *output)
	case "list":
		runList(store)
	case "show":
		runShow(store, *id)
	case "export":
		runExport(store, *output)
	case "import":
		runImport(store, *output)
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
}

func runCapture(logger *core.Logger, cfg *core.Config, store *archive.Store, screen int, output string) {
	grabber := screenshot.NewGrabber(logger)

	img, err := grabber.Capture(screen)
	if err != nil {
		log.Fatalf("Capture failed: %v", err)
	}

	if output == "" {
		output = captureFileName(cfg.Capture.OutputDir, time.Now())
	}
	if err := writePNG(img, output); err != nil {
		log.Fatalf("Write failed: %v", err)
	}

	record, err := store.Record(img, screen, output)
	if err != nil {
		log.Fatalf("Archive failed: %v", err)
	}

	logger.Info("saved %s as %s", output, record.ID)
}

func runList(store *archive.Store) {
	captures, err := store.List()
	if err != nil {
		log.Fatalf("List failed: %v", err)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"ID", "Display", "Size", "Bytes", "Taken", "Path"})
	for _, c := range captures {
		t.AppendRow(table.Row{
			c.ID,
			c.Display,
			fmt.Sprintf("%dx%d", c.Width, c.Height),
			c.Bytes,
			time.Unix(c.TakenAt, 0).Format("2006-01-02 15:04:05"),
			c.Path,
		})
	}
	fmt.Println(t.Render())
}

func runShow(store *archive.Store, id string) {
	if id == "" {
		log.Fatal("show mode requires -id")
	}

	c, err := store.Get(id)
	if err != nil {
		log.Fatalf("Show failed: %v", err)
	}

	fmt.Printf("ID:          %s\n", c.ID)
	fmt.Printf("Display:     %d\n", c.Display)
	fmt.Printf("Size:        %dx%d\n", c.Width, c.Height)
	fmt.Printf("Row length:  %d bytes\n", c.RowLen)
	fmt.Printf("Pixel width: %d bytes\n", c.PixelWidth)
	fmt.Printf("Bitmap:      %d bytes\n", c.Bytes)
	fmt.Printf("SHA256:      %s\n", c.SHA256)
	fmt.Printf("Host:        %s (%s)\n", c.Host, c.OS)
	fmt.Printf("Taken:       %s\n", time.Unix(c.TakenAt, 0).Format(time.RFC3339))
	fmt.Printf("Path:        %s\n", c.Path)
}

func runExport(store *archive.Store, output string) {
	if output == "" {
		log.Fatal("export mode requires -output")
	}
	if err := store.ExportManifest(output); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func runImport(store *archive.Store, input string) {
	if input == "" {
		log.Fatal("import mode requires -output (manifest path)")
	}
	if _, err := store.ImportManifest(input); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

// captureFileName builds a timestamped file name inside dir.
func captureFileName(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("capture-%s.png", now.Format("20060102-150405")))
}

// writePNG encodes the capture as PNG at path, creating parent directories.
// The core hands out (b, g, r, a) bytes; PNG wants RGBA, so pixels are
// re-ordered here.
func writePNG(img *screenshot.Screenshot, path string) error {
	out := image.NewRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			p := img.GetPixel(y, x)
			i := out.PixOffset(x, y)
			out.Pix[i] = p.R
			out.Pix[i+1] = p.G
			out.Pix[i+2] = p.B
			out.Pix[i+3] = p.A
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
