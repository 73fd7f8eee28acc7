package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

func TestSanitizeName_ControlChars(t *testing.T) {
	got := SanitizeName(" A\nB\rC\tD\x00 ", 100)
	if strings.ContainsAny(got, "\n\r\t\x00") {
		t.Fatalf("sanitize output contains control chars: %q", got)
	}
	if got != "ABCD" {
		t.Fatalf("SanitizeName control char behavior mismatch, got %q", got)
	}
}

func TestSanitizeName_MaxLength(t *testing.T) {
	got := SanitizeName("abcdefghijklmnopqrstuvwxyz", 10)
	if len([]rune(got)) != 10 {
		t.Fatalf("expected length 10, got %d (%q)", len([]rune(got)), got)
	}
}

func TestSanitizeName_AllowedChars(t *testing.T) {
	input := "Az09 -_.,()"
	got := SanitizeName(input, 100)
	if got != input {
		t.Fatalf("SanitizeName changed allowed chars: got %q want %q", got, input)
	}
}

func TestSanitizeName_ReplacesDisallowed(t *testing.T) {
	got := SanitizeName("bad<>|\"name", 100)
	if got != "bad____name" {
		t.Fatalf("SanitizeName disallowed replacement mismatch: got %q", got)
	}
}

func TestValidateOutputDir_Valid(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateOutputDir(dir); err != nil {
		t.Fatalf("ValidateOutputDir(%q) error = %v, want nil", dir, err)
	}
}

func TestValidateOutputDir_NotExist(t *testing.T) {
	base := t.TempDir()
	missing := filepath.Join(base, "missing")
	if err := ValidateOutputDir(missing); err == nil {
		t.Fatalf("ValidateOutputDir(%q) expected error for non-existent path", missing)
	}
}

func TestValidateOutputDir_PathTraversal(t *testing.T) {
	path := "/tmp/../etc"
	if err := ValidateOutputDir(path); err == nil {
		t.Fatalf("ValidateOutputDir(%q) expected traversal error", path)
	}
}

func TestValidateOutputDir_NotADir(t *testing.T) {
	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := ValidateOutputDir(filePath); err == nil {
		t.Fatalf("ValidateOutputDir(%q) expected non-directory error", filePath)
	}
}

func TestValidateOutputDir_InvalidArgument(t *testing.T) {
	err := ValidateOutputDir("")
	if !errors.Is(err, schema.ErrInvalidArgument) {
		t.Fatalf("ValidateOutputDir(\"\") error = %v, want ErrInvalidArgument", err)
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Spring Live (Day 1)", "Spring Live (Day 1)"},
		{"a/b:c", "a_b_c"},
		{"\n\t", DefaultProjectName},
		{"", DefaultProjectName},
	}
	for _, tc := range tests {
		if got := ProjectName(tc.in); got != tc.want {
			t.Fatalf("ProjectName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FileName("봄 라이브", FormatFCPXML); got != "봄 라이브.fcpxml" {
		t.Fatalf("FileName = %q, want %q", got, "봄 라이브.fcpxml")
	}
}

func TestSanitizeClips(t *testing.T) {
	in := []Clip{
		{ClipName: "Intro <1>", VideoID: "v1", Markers: []Marker{{Name: "m"}}},
		{ClipName: "\x00", VideoID: "v2"},
	}
	out := SanitizeClips(in)
	if out[0].ClipName != "Intro _1_" {
		t.Fatalf("clip name = %q, want %q", out[0].ClipName, "Intro _1_")
	}
	if out[1].ClipName != "v2" {
		t.Fatalf("empty clip name fallback = %q, want %q", out[1].ClipName, "v2")
	}
	out[0].Markers[0].Name = "changed"
	if in[0].Markers[0].Name != "m" || in[0].ClipName != "Intro <1>" {
		t.Fatalf("SanitizeClips modified its input: %+v", in[0])
	}
}
