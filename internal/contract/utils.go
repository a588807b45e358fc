package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	StableColor               = color.New(color.FgGreen)           // StableColor marks regions without pressure.
	EarlyPressureColor        = color.New(color.FgYellow)          // EarlyPressureColor marks early signs of pressure.
	ActiveDisplacementColor   = color.New(color.FgHiRed)           // ActiveDisplacementColor marks ongoing displacement.
	HistoricDisplacementColor = color.New(color.FgRed, color.Bold) // HistoricDisplacementColor marks severe displacement.
	NewDevelopmentColor       = color.New(color.FgHiBlack)         // NewDevelopmentColor marks greenfield regions.
	WorseColor                = color.New(color.FgRed)             // WorseColor marks unfavorable changes.
	BetterColor               = color.New(color.FgGreen)           // BetterColor marks favorable changes.
)

// GetColorBand returns a colored band label for console output (table).
func GetColorBand(b schema.Band) string {
	text := string(b)
	switch b {
	case schema.StableBand:
		return StableColor.Sprint(text)
	case schema.EarlyPressureBand:
		return EarlyPressureColor.Sprint(text)
	case schema.ActiveDisplacementBand:
		return ActiveDisplacementColor.Sprint(text)
	case schema.NewDevelopmentBand:
		return NewDevelopmentColor.Sprint(text)
	default:
		return HistoricDisplacementColor.Sprint(text)
	}
}

// GetColorChange returns a colored change label. Unfavorable changes are red.
func GetColorChange(c *schema.Change) string {
	text := schema.FormatChange(c)
	if c == nil {
		return text
	}
	if c.Worsened() {
		return WorseColor.Sprint(text)
	}
	return BetterColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the frame archive.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".velocity_frames.db"
	}
	return filepath.Join(homeDir, ".velocity_frames.db")
}

// TruncateName truncates a region name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so that at least one character survives.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseYears parses a comma-separated list of years. The keywords "snap",
// "play" and "chart" expand to the predefined year lists. An empty string
// yields nil.
func ParseYears(s string) ([]int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "snap":
		return append([]int(nil), schema.SnapYears...), nil
	case "play":
		return append([]int(nil), schema.PlayYears...), nil
	case "chart":
		return append([]int(nil), schema.ChartYears...), nil
	}

	var years []int
	for p := range strings.SplitSeq(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		y, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid year '%s' in years list", p)
		}
		years = append(years, y)
	}
	return years, nil
}
