package crawl

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\r\v]+`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)

	// boilerplatePatterns match one line at a time; "." does not cross
	// newlines.
	boilerplatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)cookie.*policy`),
		regexp.MustCompile(`(?i)privacy.*policy`),
		regexp.MustCompile(`(?i)terms.*service`),
		regexp.MustCompile(`(?i)subscribe.*newsletter`),
		regexp.MustCompile(`(?i)follow.*us`),
		regexp.MustCompile(`(?i)share.*this`),
		regexp.MustCompile(`(?i)related.*articles?`),
		regexp.MustCompile(`(?i)you.*might.*like`),
		regexp.MustCompile(`(?i)advertisement`),
	}
)

// CleanText normalizes extracted page text. Runs of spaces collapse to one,
// paragraphs stay separated by exactly one blank line, and common
// boilerplate phrases such as cookie notices and share prompts are removed.
func CleanText(text string) string {
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, "")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
