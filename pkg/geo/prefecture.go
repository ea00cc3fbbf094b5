package geo

import (
	"errors"
	"strings"

	"golang.org/x/text/width"
)

// ErrInvalidPostalCode is returned when input cannot be normalized to a
// 7-digit code.
var ErrInvalidPostalCode = errors.New("postal code must be 7 digits")

// Prefecture is one row of the static prefecture table. ID is the JIS
// prefecture code (1-47).
type Prefecture struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// NormalizePostalCode narrows fullwidth characters, strips hyphen/dash
// separators and spaces, and left-pads all-digit input to 7 (codes that
// lost a leading zero upstream). Anything else is ErrInvalidPostalCode.
func NormalizePostalCode(s string) (string, error) {
	s = stripSeparators(s)
	if s == "" || len(s) > 7 || !allDigits(s) {
		return "", ErrInvalidPostalCode
	}
	if len(s) < 7 {
		s = strings.Repeat("0", 7-len(s)) + s
	}
	return s, nil
}

// CompletePostalCode strips separators without padding and reports whether
// the user has typed a full 7-digit code. This is the keystroke-level
// check: padding is a server-side repair, not something to apply while the
// user is still typing.
func CompletePostalCode(s string) (string, bool) {
	s = stripSeparators(s)
	if len(s) != 7 || !allDigits(s) {
		return "", false
	}
	return s, true
}

func stripSeparators(s string) string {
	s = width.Narrow.String(s)
	for _, sep := range []string{"-", "‐", "−", "ー", "ｰ", "―", " "} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PrefectureByPostalCode resolves a normalized 7-digit code to a prefecture
// using the leading two digits. The mapping is deliberately prefecture-level:
// job inventory is counted per prefecture to avoid zero-result dead ends.
func PrefectureByPostalCode(code string) (Prefecture, bool) {
	if len(code) != 7 {
		return Prefecture{}, false
	}
	id, ok := prefixToPrefecture[code[:2]]
	if !ok {
		return Prefecture{}, false
	}
	return PrefectureByID(id)
}

// PrefectureByID looks up a prefecture by JIS code.
func PrefectureByID(id int) (Prefecture, bool) {
	if id < 1 || id > len(prefectures) {
		return Prefecture{}, false
	}
	return prefectures[id-1], true
}

// Prefectures returns the full static table in JIS order.
func Prefectures() []Prefecture {
	out := make([]Prefecture, len(prefectures))
	copy(out, prefectures)
	return out
}

var prefectures = []Prefecture{
	{1, "北海道", "北海道"},
	{2, "青森県", "東北"},
	{3, "岩手県", "東北"},
	{4, "宮城県", "東北"},
	{5, "秋田県", "東北"},
	{6, "山形県", "東北"},
	{7, "福島県", "東北"},
	{8, "茨城県", "関東"},
	{9, "栃木県", "関東"},
	{10, "群馬県", "関東"},
	{11, "埼玉県", "関東"},
	{12, "千葉県", "関東"},
	{13, "東京都", "関東"},
	{14, "神奈川県", "関東"},
	{15, "新潟県", "中部"},
	{16, "富山県", "中部"},
	{17, "石川県", "中部"},
	{18, "福井県", "中部"},
	{19, "山梨県", "中部"},
	{20, "長野県", "中部"},
	{21, "岐阜県", "中部"},
	{22, "静岡県", "中部"},
	{23, "愛知県", "中部"},
	{24, "三重県", "近畿"},
	{25, "滋賀県", "近畿"},
	{26, "京都府", "近畿"},
	{27, "大阪府", "近畿"},
	{28, "兵庫県", "近畿"},
	{29, "奈良県", "近畿"},
	{30, "和歌山県", "近畿"},
	{31, "鳥取県", "中国"},
	{32, "島根県", "中国"},
	{33, "岡山県", "中国"},
	{34, "広島県", "中国"},
	{35, "山口県", "中国"},
	{36, "徳島県", "四国"},
	{37, "香川県", "四国"},
	{38, "愛媛県", "四国"},
	{39, "高知県", "四国"},
	{40, "福岡県", "九州"},
	{41, "佐賀県", "九州"},
	{42, "長崎県", "九州"},
	{43, "熊本県", "九州"},
	{44, "大分県", "九州"},
	{45, "宮崎県", "九州"},
	{46, "鹿児島県", "九州"},
	{47, "沖縄県", "沖縄"},
}

// Leading two digits of a postal code → JIS prefecture code.
var prefixToPrefecture = map[string]int{
	"00": 1, "04": 1, "05": 1, "06": 1, "07": 1, "08": 1, "09": 1,
	"01": 5,
	"02": 3,
	"03": 2,
	"10": 13, "11": 13, "12": 13, "13": 13, "14": 13,
	"15": 13, "16": 13, "17": 13, "18": 13, "19": 13, "20": 13,
	"21": 14, "22": 14, "23": 14, "24": 14, "25": 14,
	"26": 12, "27": 12, "28": 12, "29": 12,
	"30": 8, "31": 8,
	"32": 9,
	"33": 11, "34": 11, "35": 11, "36": 11,
	"37": 10,
	"38": 20, "39": 20,
	"40": 19,
	"41": 22, "42": 22, "43": 22,
	"44": 23, "45": 23, "46": 23, "47": 23, "48": 23, "49": 23,
	"50": 21,
	"51": 24,
	"52": 25,
	"53": 27, "54": 27, "55": 27, "56": 27, "57": 27, "58": 27, "59": 27,
	"60": 26, "61": 26, "62": 26,
	"63": 29,
	"64": 30,
	"65": 28, "66": 28, "67": 28,
	"68": 31,
	"69": 32,
	"70": 33, "71": 33,
	"72": 34, "73": 34,
	"74": 35, "75": 35,
	"76": 37,
	"77": 36,
	"78": 39,
	"79": 38,
	"80": 40, "81": 40, "82": 40, "83": 40,
	"84": 41,
	"85": 42,
	"86": 43,
	"87": 44,
	"88": 45,
	"89": 46,
	"90": 47,
	"91": 18,
	"92": 17,
	"93": 16,
	"94": 15, "95": 15,
	"96": 7, "97": 7,
	"98": 4,
	"99": 6,
}
