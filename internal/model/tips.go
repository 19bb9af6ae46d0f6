package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeTips serializes action tips for storage in Task.Notes.
func EncodeTips(tips []string) (string, error) {
	if tips == nil {
		tips = []string{}
	}
	b, err := json.Marshal(tips)
	if err != nil {
		return "", fmt.Errorf("encoding action tips: %w", err)
	}
	return string(b), nil
}

// DecodeTips parses notes written by EncodeTips. Empty notes decode to an
// empty list.
func DecodeTips(notes string) ([]string, error) {
	tips := []string{}
	if strings.TrimSpace(notes) == "" {
		return tips, nil
	}
	if err := json.Unmarshal([]byte(notes), &tips); err != nil {
		return []string{}, fmt.Errorf("decoding action tips: %w", err)
	}
	if tips == nil {
		tips = []string{}
	}
	return tips, nil
}
