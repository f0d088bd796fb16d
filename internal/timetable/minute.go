package timetable

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Minute is a time of day with minute precision, stored as minutes since
// midnight. It maps to a Postgres TIME column.
type Minute int

// ParseMinute parses "HH:MM" (or "HH:MM:SS", seconds discarded).
func ParseMinute(s string) (Minute, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 8 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return Minute(t.Hour()*60 + t.Minute()), nil
}

// String returns the 24-hour "HH:MM" form.
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Clock12 returns the 12-hour display form, e.g. "9:30 AM".
func (m Minute) Clock12() string {
	h, min := int(m)/60, int(m)%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, min, suffix)
}

// Scan accepts TIME column values as time.Time, string or []byte.
func (m *Minute) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*m = Minute(x.Hour()*60 + x.Minute())
		return nil
	case string:
		parsed, err := ParseMinute(x)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		return m.Scan(string(x))
	case nil:
		*m = 0
		return nil
	default:
		return fmt.Errorf("timetable: cannot scan %T into Minute", v)
	}
}

// Value sends "HH:MM:00" so Postgres TIME accepts it.
func (m Minute) Value() (driver.Value, error) {
	return m.String() + ":00", nil
}

func (m Minute) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Minute) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinute(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
