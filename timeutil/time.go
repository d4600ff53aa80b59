// Package timeutil implements minute-resolution time-of-day arithmetic for
// the router. A Time is a count of minutes since some caller-defined day
// origin; it carries an explicit "unreached" sentinel so that comparisons
// never need a separate boolean.
package timeutil

import "fmt"

// Unreached compares after every real Time. It is the initial value of
// every entry in a router's arrival map.
const Unreached Time = 1<<31 - 1

// Time is a non-negative count of minutes from the day origin, or Unreached.
type Time int32

// Duration is a non-negative count of minutes.
type Duration int32

// Seconds builds a Duration from a second count, rounding down to the
// nearest whole minute. Transfer thresholds are sometimes specified in
// seconds; storage is always minutes.
func Seconds(s int32) Duration {
	return Duration(s / 60)
}

// Minutes builds a Duration from a minute count.
func Minutes(m int32) Duration {
	return Duration(m)
}

// Plus returns t advanced by d. Plus on an Unreached Time is still
// Unreached.
func (t Time) Plus(d Duration) Time {
	if t == Unreached {
		return Unreached
	}
	return t + Time(d)
}

// IsBefore reports whether t is strictly earlier than other. Unreached is
// after every real time, including itself is not before itself.
func (t Time) IsBefore(other Time) bool {
	return t < other
}

// IsAfter reports whether t is strictly later than other.
func (t Time) IsAfter(other Time) bool {
	return t > other
}

// Equals reports whether t and other denote the same instant.
func (t Time) Equals(other Time) bool {
	return t == other
}

// Min returns the earlier of t and other.
func (t Time) Min(other Time) Time {
	if other < t {
		return other
	}
	return t
}

// Reached reports whether t is a real time rather than the sentinel.
func (t Time) Reached() bool {
	return t != Unreached
}

func (t Time) String() string {
	if t == Unreached {
		return "unreached"
	}
	h := int32(t) / 60
	m := int32(t) % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

func (d Duration) String() string {
	return fmt.Sprintf("%dm", int32(d))
}
