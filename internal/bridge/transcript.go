package bridge

import (
	"strings"

	"github.com/fmueller/dictator/internal/whisper"
)

// transcriptCutset is the whitespace trimmed from the outer edges of a
// transcript. Unicode spaces are deliberately kept.
const transcriptCutset = " \t\n\r"

// collectTranscript concatenates the segment texts of the last successful
// inference on ctx, in order and without separators, skipping segments that
// carry no text. It returns the trimmed text and the segment count.
func collectTranscript(ctx whisper.Context) (string, int) {
	count := ctx.NumSegments()
	var builder strings.Builder
	for i := 0; i < count; i++ {
		text, ok := ctx.SegmentText(i)
		if !ok {
			continue
		}
		builder.WriteString(text)
	}
	return trimTranscript(builder.String()), count
}

func trimTranscript(text string) string {
	return strings.Trim(text, transcriptCutset)
}
