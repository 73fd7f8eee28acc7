package export

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const (
	DefaultProjectName = "heimdex_export"
	MaxProjectNameLen  = 120
	MaxClipNameLen     = 160
)

// SanitizeName drops control characters, replaces anything outside a
// conservative set with '_' and caps the result at maxLen runes.
func SanitizeName(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if isAllowedNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if maxLen > 0 {
		cleaned = schema.TruncateChars(cleaned, maxLen)
	}
	return cleaned
}

func isAllowedNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '-', '_', '.', ',', '(', ')':
		return true
	default:
		return false
	}
}

// SanitizeClips returns a copy of clips with names cleaned. Clips whose name
// cleans to nothing fall back to their video id.
func SanitizeClips(clips []Clip) []Clip {
	out := make([]Clip, len(clips))
	for i, c := range clips {
		c.ClipName = SanitizeName(c.ClipName, MaxClipNameLen)
		if c.ClipName == "" {
			c.ClipName = c.VideoID
		}
		c.Markers = append([]Marker(nil), c.Markers...)
		out[i] = c
	}
	return out
}

// ProjectName cleans a user supplied project name, falling back to
// DefaultProjectName.
func ProjectName(name string) string {
	if cleaned := SanitizeName(name, MaxProjectNameLen); cleaned != "" {
		return cleaned
	}
	return DefaultProjectName
}

// FileName is the output file name for a project in format f.
func FileName(projectName string, f Format) string {
	return ProjectName(projectName) + f.Extension()
}

func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return schema.InvalidArgument("output_dir is required")
	}

	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == ".." {
			return schema.InvalidArgument("output_dir cannot contain path traversal")
		}
	}

	cleaned := filepath.Clean(dir)
	if cleaned != dir {
		return schema.InvalidArgument("output_dir must be clean path")
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return schema.InvalidArgument("output_dir does not exist")
		}
		return schema.InvalidArgument("invalid output_dir: %v", err)
	}
	if !info.IsDir() {
		return schema.InvalidArgument("output_dir is not a directory")
	}

	return nil
}
