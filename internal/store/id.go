package store

import (
	"strings"

	"github.com/google/uuid"
)

const messageIDPrefix = "msg-"

// GenerateMessageID returns a new random message id.
func GenerateMessageID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return messageIDPrefix + id.String(), nil
}

// ValidMessageID reports whether id has the shape GenerateMessageID produces.
func ValidMessageID(id string) bool {
	raw, ok := strings.CutPrefix(id, messageIDPrefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(raw)
	return err == nil
}
