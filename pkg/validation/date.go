package validation

import (
	"strconv"
	"time"
)

// Messages shown for birth-date violations. One message per field; the
// first failing check wins.
const (
	MsgBirthDateRequired = "生年月日を選択してください"
	MsgBirthDateInvalid  = "正しい生年月日を入力してください"
	MsgBirthDateFuture   = "未来の日付は入力できません"
	MsgAgeTooLow         = "18歳以上の方が対象です"
	MsgAgeTooHigh        = "84歳以下の方が対象です"
)

const (
	minAge = 18
	maxAge = 84
)

// ValidateBirthDate checks the three birth-date selects against the clock
// `now`. An empty return means valid. The future-date check runs before the
// age bounds so a future date reports its own message instead of falling
// into the under-18 branch.
func ValidateBirthDate(year, month, day string, now time.Time) string {
	if year == "" || month == "" || day == "" {
		return MsgBirthDateRequired
	}

	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil {
		return MsgBirthDateInvalid
	}

	// time.Date normalizes overflows (Feb 30 becomes Mar 1/2), so an
	// impossible date is detected by reconstructing and comparing.
	birth := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if birth.Year() != y || birth.Month() != time.Month(m) || birth.Day() != d {
		return MsgBirthDateInvalid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if birth.After(today) {
		return MsgBirthDateFuture
	}

	age := Age(birth, today)
	if age < minAge {
		return MsgAgeTooLow
	}
	if age > maxAge {
		return MsgAgeTooHigh
	}
	return ""
}

// Age computes full years between birth and today, decrementing when the
// birthday has not yet passed this year.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}
