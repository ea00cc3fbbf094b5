package validation

import "regexp"

const MsgPhoneInvalid = "正しい携帯電話番号を入力してください"

var phonePattern = regexp.MustCompile(`^(070|080|090)\d{8}$`)

// Placeholder numbers that show up constantly in marketing traffic.
var examplePhoneNumbers = map[string]bool{
	"09012345678": true,
	"08012345678": true,
}

// IsValidPhoneNumber reports whether s looks like a real Japanese mobile
// number. Beyond the shape check it rejects obvious junk: long identical or
// sequential digit runs, strings that are one short cycle repeated, and two
// well-known example numbers. This filters placeholder submissions, it does
// not verify the line exists.
func IsValidPhoneNumber(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	if examplePhoneNumbers[s] {
		return false
	}
	if hasIdenticalRun(s, 5) {
		return false
	}
	if hasSequentialRun(s, 5) {
		return false
	}
	if isRepeatedCycle(s) {
		return false
	}
	return true
}

// ValidatePhoneNumber returns a message for an invalid number, "" otherwise.
func ValidatePhoneNumber(s string) string {
	if !IsValidPhoneNumber(s) {
		return MsgPhoneInvalid
	}
	return ""
}

func hasIdenticalRun(s string, n int) bool {
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func hasSequentialRun(s string, n int) bool {
	asc, desc := 1, 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1]+1 {
			asc++
		} else {
			asc = 1
		}
		if s[i] == s[i-1]-1 {
			desc++
		} else {
			desc = 1
		}
		if asc >= n || desc >= n {
			return true
		}
	}
	return false
}

// isRepeatedCycle reports whether the whole string is a single 1- or 2-digit
// pattern repeated, e.g. 09090909090.
func isRepeatedCycle(s string) bool {
	for _, period := range []int{1, 2} {
		ok := true
		for i := period; i < len(s); i++ {
			if s[i] != s[i-period] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
