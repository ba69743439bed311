package todo

import (
	"fmt"
	"time"

	"github.com/hitoshi/memoboard/internal/model"
)

// ParseDate は "YYYY-MM-DD" またはRFC 3339形式の文字列を暦日（UTCの0時）に変換する。
// RFC 3339の場合は時刻部分を切り捨て、記載されたオフセットでの日付を使う。
func ParseDate(s string) (time.Time, error) {
	if d, err := time.Parse(model.DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseClock は "HH:MM"、"HH:MM:SS" またはRFC 3339形式の文字列を "15:04:05" 形式に正規化する。
func ParseClock(s string) (string, error) {
	for _, layout := range []string{model.ClockLayout, "15:04", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.ClockLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q: expected HH:MM, HH:MM:SS or RFC 3339", s)
}

// ParseTimestamp はRFC 3339形式の日時を解析する。
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: expected RFC 3339", s)
	}
	return t, nil
}
