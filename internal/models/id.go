package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ID is a string identifier. Records written by older clients carry
// numeric ids, so decoding accepts both JSON strings and numbers.
type ID string

func NormalizeID(s string) ID {
	return ID(strings.TrimSpace(s))
}

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NormalizeID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = NormalizeID(string(data))
	return nil
}
