package validation

const MsgKanaInvalid = "ひらがなで入力してください"

// IsHiragana reports whether s is non-empty and consists only of hiragana
// plus the long vowel mark. Katakana and romaji are rejected even though a
// human could read them; the kana fields are a pronunciation guide and
// downstream reporting expects one script.
func IsHiragana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= 0x3041 && r <= 0x3096 {
			continue
		}
		if r == 0x30FC { // ー
			continue
		}
		return false
	}
	return true
}

// ValidateKana returns a message for a non-hiragana value, "" otherwise.
func ValidateKana(s string) string {
	if !IsHiragana(s) {
		return MsgKanaInvalid
	}
	return ""
}
