package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var errMissingSeparator = errors.New("dates must be separated by 'to'")

// nlParser handles natural-language dates ("next friday", "tomorrow") that
// the strict parser rejects.
var nlParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// ParseDateRange splits "start to end" and parses both sides, accepting
// either concrete dates or natural-language expressions relative to now.
func ParseDateRange(text string, now time.Time) (start, end time.Time, err error) {
	parts := strings.SplitN(text, " to ", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, errMissingSeparator
	}

	start, err = parseDate(parts[0], now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("unable to parse start date: '%s'", strings.TrimSpace(parts[0]))
	}
	end, err = parseDate(parts[1], now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("unable to parse end date: '%s'", strings.TrimSpace(parts[1]))
	}
	return start, end, nil
}

func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}

	if t, err := dateparse.ParseIn(s, now.Location()); err == nil {
		return t, nil
	}

	r, err := nlParser.Parse(s, now)
	if err != nil {
		return time.Time{}, err
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return r.Time, nil
}
