package export

import (
	"fmt"
	"strings"
)

// GenerateEDL renders clips as a CMX3600 edit decision list. The record
// timeline starts at zero and advances by each clip's duration.
func GenerateEDL(clips []Clip, title string, frameRate float64) (string, error) {
	if err := checkInputs(clips, frameRate); err != nil {
		return "", err
	}
	fps := roundHalfEven(frameRate)

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame(frameRate) {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	recordOffsetMs := 0
	for i, clip := range clips {
		srcIn := msToTimecode(clip.StartMs, fps)
		srcOut := msToTimecode(clip.EndMs, fps)
		recIn := msToTimecode(recordOffsetMs, fps)
		recOut := msToTimecode(recordOffsetMs+clip.DurationMs(), fps)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V", srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", clip.ClipName),
		)

		recordOffsetMs += clip.DurationMs()
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}
