package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/roi-ocr-mcp/internal/export"
	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
	"github.com/ironsheep/roi-ocr-mcp/internal/imaging"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
	"github.com/ironsheep/roi-ocr-mcp/internal/session"
)

var errSelectionRequired = errors.New("one of --rect or --annotations is required")

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract text from one region of an image",
		Long: `Extract runs the full pipeline once: load the image, map the selection
from display coordinates to the original image, crop, binarize and run OCR.

The selection is given in display coordinates, i.e. relative to the image
scaled down to --display-width. Use --display-width 0 to give source pixel
coordinates directly.

Examples:
  # Rectangle at (100,50), 40x20 on the 600px wide display copy
  roi-ocr-mcp extract --image scan.png --rect 100,50,40,20

  # Shapes exported from a drawing canvas
  roi-ocr-mcp extract --image scan.png --annotations canvas.json

  # Also write the text file and the binarized crop
  roi-ocr-mcp extract --image scan.png --rect 100,50,40,20 --save out --preview crop.png`,
		Args: cobra.NoArgs,
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("image", "i", "", "Path to the source image (required)")
	cmd.Flags().StringP("rect", "r", "", "Selection as left,top,width,height in display pixels")
	cmd.Flags().StringP("annotations", "a", "", "JSON file with drawn shapes (array or {\"objects\": [...]})")
	cmd.Flags().Int("display-width", -1, "Display width the selection refers to (default from configuration, 0 = source pixels)")
	cmd.Flags().StringP("save", "s", "", "Directory to write text_<timestamp>.txt into")
	cmd.Flags().StringP("preview", "p", "", "Write the binarized crop to this PNG file")
	cmd.Flags().Bool("json", false, "Print the result as JSON")

	_ = cmd.MarkFlagRequired("image")
	cmd.MarkFlagsMutuallyExclusive("rect", "annotations")

	return cmd
}

// extractOutput is the --json result.
type extractOutput struct {
	Image         string              `json:"image"`
	ROI           geometry.SourceRect `json:"roi"`
	ScalingFactor float64             `json:"scaling_factor"`
	Text          string              `json:"text"`
	Stats         ocr.Stats           `json:"stats"`
	Message       string              `json:"message"`
	SavedTo       string              `json:"saved_to,omitempty"`
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	imagePath, _ := flags.GetString("image")
	rectFlag, _ := flags.GetString("rect")
	annotationsPath, _ := flags.GetString("annotations")
	displayWidth, _ := flags.GetInt("display-width")
	saveDir, _ := flags.GetString("save")
	previewPath, _ := flags.GetString("preview")
	asJSON, _ := flags.GetBool("json")

	set, err := readSelection(rectFlag, annotationsPath)
	if err != nil {
		return err
	}

	settings := session.Settings{
		MaxDisplayWidth: cfg.MaxDisplayWidth,
		MinROISide:      cfg.MinROISide,
		OCR:             cfg.OCROptions(),
	}

	src, err := imaging.NewImageCache().Load(imagePath)
	if err != nil {
		return err
	}
	switch {
	case displayWidth == 0:
		settings.MaxDisplayWidth = src.Width
	case displayWidth > 0:
		settings.MaxDisplayWidth = displayWidth
	}

	state := session.New(settings).Load(src)
	if state, err = state.Draw(set); err != nil {
		return err
	}
	if state, err = state.Confirm(); err != nil {
		return err
	}
	logger.Info().Stringer("roi", *state.ROI()).Float64("scaling_factor", state.ScalingFactor()).Msg("region confirmed")

	if previewPath != "" {
		if err := writePreview(state, previewPath); err != nil {
			return err
		}
		logger.Info().Str("path", previewPath).Msg("preview written")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.RecognitionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RecognitionTimeout)
		defer cancel()
	}

	if state, err = state.Recognize(ctx, newRecognizer(cfg)); err != nil {
		return err
	}

	out := extractOutput{
		Image:         imagePath,
		ROI:           *state.ROI(),
		ScalingFactor: state.ScalingFactor(),
		Text:          state.Result().Text,
		Stats:         state.Result().Stats(),
		Message:       state.Status().Message,
	}

	if saveDir != "" {
		text, err := state.Text()
		if err != nil {
			return err
		}
		if out.SavedTo, err = export.Save(saveDir, text, time.Now()); err != nil {
			return err
		}
		logger.Info().Str("path", out.SavedTo).Msg("text saved")
	}

	w := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	if state.Result().Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), out.Message)
		return nil
	}
	fmt.Fprintln(w, strings.TrimRight(out.Text, "\n"))
	return nil
}

// readSelection builds the annotation set from --rect or --annotations.
func readSelection(rect, annotationsPath string) (geometry.AnnotationSet, error) {
	switch {
	case rect != "":
		a, err := parseRect(rect)
		if err != nil {
			return nil, err
		}
		return geometry.AnnotationSet{a}, nil
	case annotationsPath != "":
		data, err := os.ReadFile(annotationsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read annotations: %w", err)
		}
		set, err := geometry.ParseAnnotations(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse annotations: %w", err)
		}
		return set, nil
	default:
		return nil, errSelectionRequired
	}
}

// parseRect parses "left,top,width,height".
func parseRect(s string) (geometry.Annotation, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Annotation{}, fmt.Errorf("invalid --rect %q: want left,top,width,height", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Annotation{}, fmt.Errorf("invalid --rect %q: %w", s, err)
		}
		v[i] = f
	}
	return geometry.Rect(v[0], v[1], v[2], v[3]), nil
}

// writePreview writes the binarized crop as PNG.
func writePreview(state session.State, path string) error {
	binary, err := state.Preview()
	if err != nil {
		return err
	}
	data, err := imaging.EncodePNG(binary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
