package utm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultLifetime keeps campaign data for seven days.
var DefaultLifetime = Lifetime{Days: 7}

// maxExpiry is the last instant a cookie Expires attribute can express.
var maxExpiry = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// Lifetime is a calendar interval. Months and years follow the calendar,
// so "one month" from January 31st lands on March 3rd or 2nd like AddDate does.
type Lifetime struct {
	Years    int
	Months   int
	Days     int
	Duration time.Duration
}

// LifetimeOf wraps a fixed duration.
func LifetimeOf(d time.Duration) Lifetime {
	return Lifetime{Duration: d}
}

// ParseLifetime accepts ISO 8601 durations ("P7D", "P1M", "PT12H",
// "P1Y2M3DT4H5M6S", "P2W") and Go durations ("168h").
func ParseLifetime(s string) (Lifetime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Lifetime{}, fmt.Errorf("%w: empty value", ErrInvalidLifetime)
	}

	if !strings.HasPrefix(strings.ToUpper(s), "P") {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Lifetime{}, fmt.Errorf("%w: %q", ErrInvalidLifetime, s)
		}
		return LifetimeOf(d), nil
	}

	m := isoDuration.FindStringSubmatch(strings.ToUpper(s))
	if m == nil || s == "P" || strings.HasSuffix(strings.ToUpper(s), "T") {
		return Lifetime{}, fmt.Errorf("%w: %q", ErrInvalidLifetime, s)
	}

	n := make([]int, len(m))
	for i := 1; i < len(m); i++ {
		if m[i] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i])
		if err != nil {
			return Lifetime{}, fmt.Errorf("%w: %q", ErrInvalidLifetime, s)
		}
		n[i] = v
	}

	return Lifetime{
		Years:  n[1],
		Months: n[2],
		Days:   n[3]*7 + n[4],
		Duration: time.Duration(n[5])*time.Hour +
			time.Duration(n[6])*time.Minute +
			time.Duration(n[7])*time.Second,
	}, nil
}

// IsZero reports whether the lifetime is empty.
func (l Lifetime) IsZero() bool {
	return l == Lifetime{}
}

// Expiry returns now plus the lifetime. It fails when the result is not
// after now or cannot be expressed in a cookie.
func (l Lifetime) Expiry(now time.Time) (time.Time, error) {
	if l.Years < 0 || l.Months < 0 || l.Days < 0 || l.Duration < 0 {
		return time.Time{}, fmt.Errorf("%w: negative interval %s", ErrInvalidLifetime, l)
	}

	expires := now.AddDate(l.Years, l.Months, l.Days).Add(l.Duration)
	if !expires.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s does not reach past now", ErrInvalidLifetime, l)
	}
	if expires.After(maxExpiry) {
		return time.Time{}, fmt.Errorf("%w: %s expires after year 9999", ErrInvalidLifetime, l)
	}
	return expires, nil
}

// String formats the lifetime as an ISO 8601 duration.
func (l Lifetime) String() string {
	if l.IsZero() {
		return "PT0S"
	}

	var b strings.Builder
	b.WriteByte('P')
	if l.Years != 0 {
		b.WriteString(strconv.Itoa(l.Years) + "Y")
	}
	if l.Months != 0 {
		b.WriteString(strconv.Itoa(l.Months) + "M")
	}
	if l.Days != 0 {
		b.WriteString(strconv.Itoa(l.Days) + "D")
	}
	if l.Duration != 0 {
		b.WriteByte('T')
		d := l.Duration
		if h := d / time.Hour; h != 0 {
			b.WriteString(strconv.FormatInt(int64(h), 10) + "H")
			d -= h * time.Hour
		}
		if m := d / time.Minute; m != 0 {
			b.WriteString(strconv.FormatInt(int64(m), 10) + "M")
			d -= m * time.Minute
		}
		if d != 0 {
			b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "S")
		}
	}
	return b.String()
}

// UnmarshalText lets env and flag parsers read a Lifetime.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText writes the ISO 8601 form.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
