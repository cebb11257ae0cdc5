package util

import (
	"fmt"
	"strconv"
	"time"
)

// discordEpoch is the first second of 2015, the zero point of Discord
// snowflake timestamps.
const discordEpoch = 1420070400000

// SnowflakeTime extracts the creation time embedded in a snowflake ID.
// Unparseable IDs return the zero time.
func SnowflakeTime(id string) time.Time {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}
	}
	ms := int64(n>>22) + discordEpoch
	return time.UnixMilli(ms)
}

// StringToUint64 parses a snowflake string.
func StringToUint64(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse uint64: %w", err)
	}
	return n, nil
}

// Uint64ToString formats a snowflake.
func Uint64ToString(n uint64) string {
	return strconv.FormatUint(n, 10)
}
