package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Match returns the candidate whose slug equals the slug of input.
func Match(input string, candidates []string) (string, bool) {
	want := Make(input)
	for _, c := range candidates {
		if Make(c) == want {
			return c, true
		}
	}
	return "", false
}
