package transcript

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/menumap/pkg/constants"
)

// state is the parser position within the transcript.
type state int

const (
	stateNoCategory state = iota
	stateInCategory
	stateDescription
	stateComposition
	stateAllergens
)

func (s state) String() string {
	switch s {
	case stateNoCategory:
		return "no-category"
	case stateInCategory:
		return "in-category"
	case stateDescription:
		return "description"
	case stateComposition:
		return "composition"
	case stateAllergens:
		return "allergens"
	default:
		return "unknown"
	}
}

// Section and service headers. Matching is by case-sensitive prefix.
const (
	headerDescription = "Описание"
	headerComposition = "Состав"
	headerAllergens   = "Аллергены"
	headerConflict    = "Конфликт"
	headerTiming      = "Тайминг"
	headerCutlery     = "Приборы"
	headerTechnical   = "Технические"
	headerNutrition   = "Пищевая"

	separator = "________________"
	bullet    = "*"
)

// headers never start a dish.
var headers = []string{
	headerDescription, headerComposition, headerAllergens, headerConflict,
	headerTiming, headerCutlery, headerTechnical, headerNutrition,
}

// serviceHeaders close an open description.
var serviceHeaders = []string{
	headerConflict, headerTiming, headerCutlery, headerTechnical, headerNutrition,
}

var categoryLine = regexp.MustCompile(`^[А-ЯЁ][а-яё\s]+$`)

// maxCategoryWords separates short category captions from dish names that
// happen to be written in plain lowercase words.
const maxCategoryWords = 3

// stopRule ends a multi-line section when it matches the next line.
type stopRule func(line string) bool

func blank(line string) bool { return line == "" }

func prefix(p string) stopRule {
	return func(line string) bool { return strings.HasPrefix(line, p) }
}

// proseResumed matches an unbulleted long line: the section is over and
// ordinary text continues.
func proseResumed(line string) bool {
	return !strings.HasPrefix(line, bullet) &&
		!strings.HasPrefix(line, "Основ") &&
		utf8.RuneCountInString(line) > constants.LongParagraph
}

// stopRules lists, per section, the conditions that end it.
var stopRules = map[state][]stopRule{
	stateComposition: {
		blank,
		prefix(headerDescription),
		prefix(headerAllergens),
		prefix(headerConflict),
		prefix(headerTiming),
		prefix(headerTechnical),
		prefix(separator),
		proseResumed,
	},
	stateAllergens: {
		blank,
		prefix(headerDescription),
		prefix(headerComposition),
		prefix(headerConflict),
		prefix(headerTiming),
		prefix(headerTechnical),
		prefix(separator),
	},
}

func stops(s state, line string) bool {
	for _, rule := range stopRules[s] {
		if rule(line) {
			return true
		}
	}
	return false
}

func isCategory(line string) bool {
	return !hasAnyPrefix(line, headers) &&
		categoryLine.MatchString(line) &&
		!strings.Contains(line, ":") &&
		len(strings.Fields(line)) <= maxCategoryWords
}

func isDish(line string) bool {
	if hasAnyPrefix(line, headers) || strings.HasPrefix(line, bullet) || strings.HasPrefix(line, separator) {
		return false
	}
	return utf8.RuneCountInString(line) > constants.TranscriptMinDishLength
}

func isAllergenHeader(line string) bool {
	return strings.HasPrefix(line, headerAllergens) || strings.Contains(strings.ToLower(line), "аллергены")
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// afterColon returns the trimmed text following the first colon.
func afterColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}
