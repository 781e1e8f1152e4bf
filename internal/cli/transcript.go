package cli

import "strings"

// whisper.cpp emits this marker for input without speech.
const blankAudioToken = "[BLANK_AUDIO]"

func isBlankTranscript(transcript string) bool {
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return true
	}

	return strings.EqualFold(trimmed, blankAudioToken)
}

func noSpeechHint() string {
	return "No speech detected. Check that the recording contains audible speech and matches --language."
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
