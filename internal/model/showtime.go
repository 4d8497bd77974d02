package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// secondsPerDay bounds a ShowTime to a single day.
const secondsPerDay = 24 * 60 * 60

// ShowTime is a time of day with second precision and no date.  It is
// stored as the number of seconds since midnight and maps to a MySQL
// TIME(0) column.
type ShowTime uint32

// NewShowTime builds a ShowTime from its clock components.
func NewShowTime(hour, minute, second int) (ShowTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	return ShowTime(hour*3600 + minute*60 + second), nil
}

// ParseShowTime parses "HH:MM:SS" or "HH:MM".
func ParseShowTime(s string) (ShowTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		// MySQL may append fractional seconds even for TIME(0) in some modes.
		if i == 2 {
			p, _, _ = strings.Cut(p, ".")
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		nums[i] = n
	}
	return NewShowTime(nums[0], nums[1], nums[2])
}

func (t ShowTime) Hour() int   { return int(t) / 3600 }
func (t ShowTime) Minute() int { return int(t) % 3600 / 60 }
func (t ShowTime) Second() int { return int(t) % 60 }

// String renders the time as HH:MM:SS, the format MySQL uses for TIME.
func (t ShowTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Clock renders the time as HH:MM for display.
func (t ShowTime) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Scan implements sql.Scanner.  The MySQL driver hands TIME columns over
// as text; durations are accepted for drivers that decode them.
func (t *ShowTime) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		st, err := ParseShowTime(string(v))
		if err != nil {
			return err
		}
		*t = st
	case string:
		st, err := ParseShowTime(v)
		if err != nil {
			return err
		}
		*t = st
	case time.Duration:
		secs := int64(v / time.Second)
		if secs < 0 || secs >= secondsPerDay {
			return fmt.Errorf("time of day out of range: %s", v)
		}
		*t = ShowTime(secs)
	case int64:
		if v < 0 || v >= secondsPerDay {
			return fmt.Errorf("time of day out of range: %d", v)
		}
		*t = ShowTime(v)
	case nil:
		return fmt.Errorf("time of day is NULL")
	default:
		return fmt.Errorf("cannot scan %T into ShowTime", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t ShowTime) Value() (driver.Value, error) {
	return t.String(), nil
}
