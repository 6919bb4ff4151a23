package ui

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Draft holds the in-progress values of the create goal form.
type Draft struct {
	name         string
	targetDate   *time.Time
	targetAmount *float64
	icon         *string
}

// NewDraft returns a draft whose target date defaults to now.
func NewDraft(now time.Time) *Draft {
	return &Draft{targetDate: &now}
}

func (d *Draft) Name() string { return d.name }

// SetName stores the name verbatim. Trimming happens only at submit.
func (d *Draft) SetName(name string) { d.name = name }

func (d *Draft) TargetDate() *time.Time {
	if d.targetDate == nil {
		return nil
	}
	t := *d.targetDate
	return &t
}

// SetTargetDate stores the date as given; nil clears it.
func (d *Draft) SetTargetDate(t *time.Time) {
	if t == nil {
		d.targetDate = nil
		return
	}
	v := *t
	d.targetDate = &v
}

func (d *Draft) TargetAmount() *float64 {
	if d.targetAmount == nil {
		return nil
	}
	v := *d.targetAmount
	return &v
}

// SetTargetAmountText reads the longest leading number in raw, ignoring
// whatever follows it, so "12abc" stores 12. A missing, negative, NaN or
// infinite value leaves the amount absent.
//
// The returned text is what the amount input should show: the part of raw
// that was read, kept verbatim so partial input like "12." or "1e" can still
// be completed, or "" when nothing usable remains.
func (d *Draft) SetTargetAmountText(raw string) string {
	v, shown := parseAmount(raw)
	d.targetAmount = v
	return shown
}

func parseAmount(raw string) (*float64, string) {
	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	num, typed := scanNumber(text)
	if num == "" {
		return nil, typed
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, ""
	}
	return &v, typed
}

// scanNumber splits off the decimal literal at the start of s. num is the
// longest complete literal; typed also keeps an unfinished tail such as a
// bare sign, a lone "." or an exponent marker still waiting for digits.
func scanNumber(s string) (num, typed string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := skipDigits(s, i)
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = skipDigits(s, i)
		i += fracDigits
	}
	if intDigits+fracDigits == 0 {
		return "", s[:i]
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if exp := skipDigits(s, i); exp > 0 {
			i += exp
			end = i
		}
	}
	return s[:end], s[:i]
}

func skipDigits(s string, from int) int {
	n := 0
	for from+n < len(s) && s[from+n] >= '0' && s[from+n] <= '9' {
		n++
	}
	return n
}

func (d *Draft) Icon() *string {
	if d.icon == nil {
		return nil
	}
	v := *d.icon
	return &v
}

func (d *Draft) SetIcon(token string) { d.icon = &token }

func (d *Draft) ClearIcon() { d.icon = nil }

// HasIcon reports whether an icon is set. It is derived, never stored.
func (d *Draft) HasIcon() bool { return d.icon != nil }
