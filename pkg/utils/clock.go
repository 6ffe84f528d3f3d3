package utils

import (
	"fmt"
	"time"

	"github.com/beevik/ntp"
)

const ntpTimeout = 3 * time.Second

// ClockOffset measures how far the system clock is from the given NTP
// server. Snapshot and clip filenames are wall-clock derived, and boards
// without an RTC drift badly, so the offset is worth surfacing.
func ClockOffset(server string) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: ntpTimeout})
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", server, err)
	}
	if err := resp.Validate(); err != nil {
		return 0, fmt.Errorf("validate %s response: %w", server, err)
	}

	return resp.ClockOffset, nil
}
