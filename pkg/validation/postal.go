package validation

import "driver-apply/pkg/geo"

const MsgPostalCodeInvalid = "郵便番号は7桁の数字で入力してください"

// ValidatePostalCode returns a message unless s normalizes to exactly 7
// digits. Callers in location-selection mode skip this and validate the
// prefecture/municipality pair instead.
func ValidatePostalCode(s string) string {
	if _, ok := geo.CompletePostalCode(s); !ok {
		return MsgPostalCodeInvalid
	}
	return ""
}
