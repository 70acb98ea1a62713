package app

import (
	"fmt"
	"strings"
	"time"

	"tablescout/internal/domain"
)

// ParseTimeFilter converts a 12-hour clock string ("06:00 PM") into the
// 24-hour "HH:MM" form the upstream slot filter expects. The failure is
// request-fatal: an unparseable time short-circuits the whole search before
// any network call is made.
func ParseTimeFilter(s string) (string, error) {
	t, err := time.Parse("03:04 PM", strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %q (want HH:MM AM/PM)", domain.ErrInvalidTimeFormat, s)
	}
	return t.Format("15:04"), nil
}
