package export

import (
	"fmt"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// GenerateFCPXML renders clips as an FCPXML 1.9 document: one 1080p format,
// one asset per clip and the clips laid end to end on the project spine.
// Markers inside a clip's source range are attached to its asset-clip.
func GenerateFCPXML(clips []Clip, projectName string, frameRate float64) (string, error) {
	if err := checkInputs(clips, frameRate); err != nil {
		return "", err
	}
	tb := newTimebase(frameRate)
	project := escape(projectName)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<!DOCTYPE fcpxml>\n")
	b.WriteString("<fcpxml version=\"1.9\">\n")
	b.WriteString("    <resources>\n")
	fmt.Fprintf(&b, "        <format id=\"r0\" name=\"FFVideoFormat1920x1080p%d\" width=\"1920\" height=\"1080\" frameDuration=\"%s\"/>\n",
		tb.fps, tb.frameDuration())
	for i, clip := range clips {
		fmt.Fprintf(&b, "        <asset id=\"r%d\" name=\"%s\" hasVideo=\"1\" hasAudio=\"1\" format=\"r0\" duration=\"%s\" start=\"0/1s\" audioSources=\"1\" audioChannels=\"2\">\n",
			i+1, escape(clip.ClipName), tb.rational(clip.DurationMs()))
		fmt.Fprintf(&b, "            <media-rep kind=\"original-media\" src=\"%s\"/>\n", escape(clip.Locator()))
		b.WriteString("        </asset>\n")
	}
	b.WriteString("    </resources>\n")

	totalMs := 0
	for _, clip := range clips {
		totalMs += clip.DurationMs()
	}

	b.WriteString("    <library>\n")
	fmt.Fprintf(&b, "        <event name=\"%s\">\n", project)
	fmt.Fprintf(&b, "            <project name=\"%s\">\n", project)
	fmt.Fprintf(&b, "                <sequence tcStart=\"0/1s\" tcFormat=\"%s\" duration=\"%s\" format=\"r0\">\n",
		tb.tcFormat(), tb.rational(totalMs))
	b.WriteString("                    <spine>\n")

	offsetMs := 0
	for i, clip := range clips {
		attrs := fmt.Sprintf("ref=\"r%d\" name=\"%s\" offset=\"%s\" start=\"%s\" duration=\"%s\" format=\"r0\" tcFormat=\"%s\" enabled=\"1\"",
			i+1, escape(clip.ClipName), tb.rational(offsetMs), tb.rational(clip.StartMs), tb.rational(clip.DurationMs()), tb.tcFormat())
		markers := clipMarkers(clip)
		if len(markers) == 0 {
			fmt.Fprintf(&b, "                        <asset-clip %s/>\n", attrs)
		} else {
			fmt.Fprintf(&b, "                        <asset-clip %s>\n", attrs)
			for _, m := range markers {
				fmt.Fprintf(&b, "                            <marker start=\"%s\" duration=\"%s\" value=\"%s\"", tb.rational(m.TimeMs), tb.frameDuration(), escape(m.Name))
				if m.Note != "" {
					fmt.Fprintf(&b, " note=\"%s\"", escape(m.Note))
				}
				b.WriteString("/>\n")
			}
			b.WriteString("                        </asset-clip>\n")
		}
		offsetMs += clip.DurationMs()
	}

	b.WriteString("                    </spine>\n")
	b.WriteString("                </sequence>\n")
	b.WriteString("            </project>\n")
	b.WriteString("        </event>\n")
	b.WriteString("    </library>\n")
	b.WriteString("</fcpxml>\n")
	return b.String(), nil
}

// clipMarkers keeps the markers that fall inside the clip's source range.
func clipMarkers(c Clip) []Marker {
	out := make([]Marker, 0, len(c.Markers))
	for _, m := range c.Markers {
		if m.TimeMs >= c.StartMs && m.TimeMs < c.EndMs {
			out = append(out, m)
		}
	}
	return out
}
