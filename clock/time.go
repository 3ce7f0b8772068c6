// Package clock holds the wall-clock value shown on the face and the
// button logic that adjusts it.
package clock

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour

	// Noon is the time shown at power-on.
	Noon = 12 * SecondsPerHour
)

// Wrap reduces s into [0, SecondsPerDay), wrapping negative values.
func Wrap(s int) int {
	s %= SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	return s
}

// Hour returns the 24-hour hour of s.
func Hour(s int) int { return s / SecondsPerHour }

// Minute returns the minute within the hour.
func Minute(s int) int { return (s % SecondsPerHour) / SecondsPerMinute }

// Second returns the second within the minute.
func Second(s int) int { return s % SecondsPerMinute }

// DisplayHour maps a 24-hour hour for display. In 12-hour mode midnight and
// noon both show as 12.
func DisplayHour(hour int, twelveHour bool) int {
	if !twelveHour {
		return hour
	}
	if hour == 0 {
		return 12
	}
	if hour > 12 {
		return hour % 12
	}
	return hour
}

// Format writes s as "HH:MM:SS" into buf and returns it as a slice.
func Format(buf *[8]byte, s int, twelveHour bool) []byte {
	s = Wrap(s)
	put2(buf[0:2], DisplayHour(Hour(s), twelveHour))
	buf[2] = ':'
	put2(buf[3:5], Minute(s))
	buf[5] = ':'
	put2(buf[6:8], Second(s))
	return buf[:]
}

func put2(dst []byte, v int) {
	dst[0] = byte('0' + v/10%10)
	dst[1] = byte('0' + v%10)
}

// Parse reads "HH:MM:SS" (24-hour) into seconds since midnight.
func Parse(s string) (int, bool) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return 0, false
	}
	h, ok1 := get2(s[0:2])
	m, ok2 := get2(s[3:5])
	sec, ok3 := get2(s[6:8])
	if !ok1 || !ok2 || !ok3 || h > 23 || m > 59 || sec > 59 {
		return 0, false
	}
	return h*SecondsPerHour + m*SecondsPerMinute + sec, true
}

func get2(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
