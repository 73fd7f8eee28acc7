package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sceneIDPattern       = regexp.MustCompile(`^.+_scene_\d+$`)
	paddedSceneIDPattern = regexp.MustCompile(`^.+_scene_\d{3,}$`)
)

// IsSceneID reports whether id has the form {video_id}_scene_{n}.
func IsSceneID(id string) bool {
	return sceneIDPattern.MatchString(id)
}

// IsPaddedSceneID reports whether id has the form {video_id}_scene_{nnn}
// with at least three digits, as produced by scene detection.
func IsPaddedSceneID(id string) bool {
	return paddedSceneIDPattern.MatchString(id)
}

// SceneID formats the canonical scene identifier for a video.
func SceneID(videoID string, index int) string {
	return fmt.Sprintf("%s_scene_%03d", videoID, index)
}

// HasPathTraversal reports whether an identifier could escape a storage
// prefix when used as a path component.
func HasPathTraversal(id string) bool {
	return strings.ContainsAny(id, "/\\\x00") || strings.Contains(id, "..")
}

// CharCount returns the number of code points in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// TruncateChars cuts s to at most n code points.
func TruncateChars(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
