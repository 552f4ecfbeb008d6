// Package source classifies a translate input as a remote YouTube URL or a
// local file path.
package source

import "regexp"

// Recognized YouTube URL shapes: watch page, short link, embed, mobile host,
// and shorts. Anything else is treated as a local file path.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:m\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/shorts/[\w-]+`),
}

// IsRemote reports whether input is a YouTube URL that must be downloaded
// before the pipeline can start.
func IsRemote(input string) bool {
	for _, re := range youtubePatterns {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}
