// Package isoduration parses ISO-8601 durations of the form
// P[nY][nM][nW][nD][T[nH][nM][nS]].
//
// Only integer components are accepted. The combined P<date>T<time> form is
// not supported and is rejected as a format error.
package isoduration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFormat = errors.New("isoduration: invalid ISO 8601 duration")

// Group order is fixed: years, months, weeks, days, then hours, minutes,
// seconds after the T designator.
var pattern = regexp.MustCompile(
	`^P` +
		`(?:(\d+)Y)?` +
		`(?:(\d+)M)?` +
		`(?:(\d+)W)?` +
		`(?:(\d+)D)?` +
		`(?:T` +
		`(?:(\d+)H)?` +
		`(?:(\d+)M)?` +
		`(?:(\d+)S)?)?$`,
)

// Duration is an amount of calendar and clock time. Components are never
// normalized: P36M stays 36 months.
type Duration struct {
	Years   int
	Months  int
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// FormatError reports input that does not match the duration grammar.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("isoduration: invalid ISO 8601 duration string %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("isoduration: invalid ISO 8601 duration string %q", e.Input)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// Parse converts text into a Duration. The whole input must match the
// grammar; absent components are zero.
func Parse(text string) (Duration, error) {
	groups := pattern.FindStringSubmatch(text)
	if groups == nil {
		return Duration{}, &FormatError{Input: text}
	}

	var values [7]int
	for i, raw := range groups[1:] {
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Duration{}, &FormatError{Input: text, Err: err}
		}
		values[i] = n
	}

	return Duration{
		Years:   values[0],
		Months:  values[1],
		Weeks:   values[2],
		Days:    values[3],
		Hours:   values[4],
		Minutes: values[5],
		Seconds: values[6],
	}, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(text string) Duration {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Duration) IsZero() bool {
	return d == Duration{}
}

// String renders d in canonical form. The zero value renders as "P".
func (d Duration) String() string {
	var b strings.Builder
	b.WriteByte('P')
	writeComponent(&b, d.Years, 'Y')
	writeComponent(&b, d.Months, 'M')
	writeComponent(&b, d.Weeks, 'W')
	writeComponent(&b, d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		b.WriteByte('T')
		writeComponent(&b, d.Hours, 'H')
		writeComponent(&b, d.Minutes, 'M')
		writeComponent(&b, d.Seconds, 'S')
	}
	return b.String()
}

func writeComponent(b *strings.Builder, n int, designator byte) {
	if n == 0 {
		return
	}
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(designator)
}

// Approximate converts d to a time.Duration using 365-day years and 30-day
// months. Calendar-exact arithmetic needs a reference instant; see AddTo.
func (d Duration) Approximate() time.Duration {
	days := d.Years*365 + d.Months*30 + d.Weeks*7 + d.Days
	return time.Duration(days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

// AddTo returns t advanced by d using calendar arithmetic.
func (d Duration) AddTo(t time.Time) time.Time {
	t = t.AddDate(d.Years, d.Months, d.Weeks*7+d.Days)
	return t.Add(time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second)
}
