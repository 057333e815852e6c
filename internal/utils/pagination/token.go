// Package pagination encodes keyset cursors as opaque tokens.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Tokens travel in query strings, so they use the URL-safe alphabet.
var encoding = base64.RawURLEncoding

// EncodeToken creates a token from the last row's entry timestamp and creation time.
func EncodeToken(timestamp time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", timestamp.UTC().Format(timeFormat), createdAt.UTC().Format(timeFormat))
	return encoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token back into entry timestamp and creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := encoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	timestamp, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return timestamp, createdAt, nil
}
