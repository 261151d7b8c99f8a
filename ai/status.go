package ai

import (
	"regexp"
	"strconv"
)

// langchaingo surfaces HTTP failures as formatted error strings rather
// than typed errors, so the status code has to be recovered from the
// message. Matches "status code: 429" and similar phrasings.
var statusPattern = regexp.MustCompile(`status(?: code)?:? (\d{3})`)

func statusCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	m := statusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	code, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, false
	}
	return code, true
}
