package sources

import (
	"regexp"
	"strings"
)

// warningPhrases are service notes that leak into exported menu text.
// Longer phrases come first so a shorter one does not leave a tail behind.
var warningPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)⚠\s*(?:Обязательно|Важно)\s+предупредить\s+(?:гостей\s+)?о:\s*Технические данные`),
	regexp.MustCompile(`(?i)⚠\s*Важно предупредить гостей о наличии:\s*[^.]*Технические данные`),
	regexp.MustCompile(`(?i)⚠\s*(?:Обязательно|Важно)\s+предупре(?:дить|ждать)\s+(?:гостей\s+)?о(?:\s+наличии)?:\s*`),
	regexp.MustCompile(`(?i)⚠\s*Важно:\s*`),
	regexp.MustCompile(`⚠\s*`),
	regexp.MustCompile(`(?i)Технические данные`),
}

var leadingBullet = regexp.MustCompile(`(?m)^\s*\*\s*`)

// Clean strips warning markers and technical notes from text and tidies
// whitespace line by line. Blank lines are removed.
func Clean(text string) string {
	for _, re := range warningPhrases {
		text = re.ReplaceAllString(text, "")
	}
	text = leadingBullet.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// CleanText applies Clean to an optional field.
func CleanText(s *string) *string {
	if s == nil {
		return nil
	}
	return Text(Clean(*s))
}
