package age

import (
	"regexp"
	"strconv"
	"strings"
)

// gradeAges maps a normalized grade token to the typical age of a child in
// that grade.
var gradeAges = map[string]int{
	"pk3":          3,
	"pre-k3":       3,
	"prek3":        3,
	"pk4":          4,
	"pre-k4":       4,
	"prek4":        4,
	"pk":           4,
	"pre-k":        4,
	"prek":         4,
	"k":            5,
	"kindergarten": 5,
	"1st":          6,
	"2nd":          7,
	"3rd":          8,
	"4th":          9,
	"5th":          10,
	"6th":          11,
	"7th":          12,
	"8th":          13,
	"9th":          14,
	"10th":         15,
	"11th":         16,
	"12th":         17,
	"high school":  17,
}

// GradeAge returns the age for a grade token such as "3rd", "K" or "Pre-K".
func GradeAge(grade string) (int, bool) {
	a, ok := gradeAges[strings.ToLower(strings.TrimSpace(grade))]
	return a, ok
}

type rule struct {
	name    string
	pattern *regexp.Regexp
	extract func(m []string) (Range, bool)
}

var (
	gradeWord = regexp.MustCompile(`(?i)\s*grade\s*`)

	// Rules are tried in order; the first that matches and extracts wins.
	rules = []rule{
		{"under", regexp.MustCompile(`(?i)^(\d+)\s*U$`), upTo},
		{"and under", regexp.MustCompile(`(?i)^(\d+)\s+and\s+under$`), upTo},
		{"numeric range", regexp.MustCompile(`^(\d+)\s*[-–]\s*(\d+)$`), numericRange},
		{"single age", regexp.MustCompile(`^(\d+)$`), singleAge},
		{"grade range", regexp.MustCompile(`(?i)^(.+?)(?:\s*[-–]\s*|\s+through\s+|\s+to\s+)(.+?)(?:\s+grade)?$`), gradeRange},
		{"single grade", regexp.MustCompile(`(?i)^(.+?)\s*grade$`), singleGrade},
	}
)

// ParseGroup parses a free-text age group such as "14U", "5-12", "7",
// "1st-6th Grade" or "K through 2nd". ok is false when no rule applies.
func ParseGroup(text string) (Range, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Range{}, false
	}
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if rng, ok := r.extract(m); ok {
			return rng, true
		}
	}
	return Range{}, false
}

func upTo(m []string) (Range, bool) {
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Range{}, false
	}
	return Range{Min: 0, Max: n}, true
}

func numericRange(m []string) (Range, bool) {
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return Range{}, false
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return Range{}, false
	}
	return Range{Min: lo, Max: hi}, true
}

func singleAge(m []string) (Range, bool) {
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Range{}, false
	}
	return Range{Min: n, Max: n}, true
}

func gradeRange(m []string) (Range, bool) {
	lo, ok := GradeAge(stripGradeWord(m[1]))
	if !ok {
		return Range{}, false
	}
	hi, ok := GradeAge(stripGradeWord(m[2]))
	if !ok {
		return Range{}, false
	}
	return Range{Min: lo, Max: hi}, true
}

func singleGrade(m []string) (Range, bool) {
	a, ok := GradeAge(m[1])
	if !ok {
		return Range{}, false
	}
	return Range{Min: a, Max: a}, true
}

// stripGradeWord removes the first "grade" word and its surrounding space.
func stripGradeWord(s string) string {
	loc := gradeWord.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
}
