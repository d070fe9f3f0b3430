package materials

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"studyquiz/internal/models"
)

// Client-facing messages for ErrInvalidFilename and ErrNotFound.
const (
	MsgInvalidFilename = "Invalid filename format"
	MsgNotFound        = "File not found"
)

var (
	ErrInvalidFilename = errors.New("invalid filename format")
	ErrNotFound        = errors.New("file not found")
)

var (
	allowedFilename = regexp.MustCompile(`(?i)^[a-z0-9_-]+_[1-9]\d*\.pdf$`)
	materialName    = regexp.MustCompile(`(?i)^(.+?)_(\d+)\.pdf$`)
	disallowedRun   = regexp.MustCompile(`[^a-z0-9_-]+`)
	underscoreRun   = regexp.MustCompile(`_+`)
)

// SanitizeTopic maps a user supplied topic onto [a-z0-9_-], e.g.
// "Machine Learning!!" becomes "machine_learning".
func SanitizeTopic(topic string) string {
	if decoded, err := url.PathUnescape(topic); err == nil {
		topic = decoded
	}
	t := strings.ToLower(strings.TrimSpace(topic))
	t = disallowedRun.ReplaceAllString(t, "_")
	t = underscoreRun.ReplaceAllString(t, "_")
	return strings.Trim(t, "_")
}

// CanonicalFilename builds "<topic>_<level>.pdf" from a sanitized topic and
// validates the result.
func CanonicalFilename(topic string, level int) (string, error) {
	name := fmt.Sprintf("%s_%d.pdf", SanitizeTopic(topic), level)
	if !ValidFilename(name) {
		return name, fmt.Errorf("%w: %s", ErrInvalidFilename, name)
	}
	return name, nil
}

// ValidFilename reports whether name has the form <topic>_<level>.pdf with a
// whitelisted topic and a positive level without leading zeros.
func ValidFilename(name string) bool {
	return allowedFilename.MatchString(name)
}

// ParseFilename extracts the topic and level from a material filename. The
// extension is matched case-insensitively; level 0 is rejected.
func ParseFilename(name string) (models.MaterialEntry, bool) {
	m := materialName.FindStringSubmatch(name)
	if m == nil {
		return models.MaterialEntry{}, false
	}
	level, err := strconv.Atoi(m[2])
	if err != nil || level < 1 {
		return models.MaterialEntry{}, false
	}
	return models.MaterialEntry{Topic: m[1], Level: level, Filename: name}, true
}
