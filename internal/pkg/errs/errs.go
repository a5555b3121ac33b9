package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is matches sentinels attached with Mark as well as ordinary wrap chains.
// The standard library's errors.Is cannot see marks, so sentinel checks on
// errors from this package must go through here.
func Is(err error, reference error) bool {
	return cr.Is(err, reference)
}

// Truncate shortens an error message for persistence as a diagnostic string.
func Truncate(err error, maxLen int) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if maxLen > 0 && len(msg) > maxLen {
		return msg[:maxLen]
	}
	return msg
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
