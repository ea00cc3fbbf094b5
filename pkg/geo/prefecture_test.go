package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "1010051", "1010051", true},
		{"hyphenated", "101-0051", "1010051", true},
		{"fullwidth digits and dash", "５３２−００１１", "5320011", true},
		{"long vowel mark as separator", "101ー0051", "1010051", true},
		{"lost leading zero", "600000", "0600000", true},
		{"spaces", "101 0051", "1010051", true},
		{"too long", "10100512", "", false},
		{"letters", "101005a", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePostalCode(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidPostalCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Hyphenated and plain forms of the same code must resolve identically.
func TestNormalizeRoundTrip(t *testing.T) {
	a, err := NormalizePostalCode("101-0051")
	require.NoError(t, err)
	b, err := NormalizePostalCode("1010051")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	prefA, okA := PrefectureByPostalCode(a)
	prefB, okB := PrefectureByPostalCode(b)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, prefA, prefB)
}

func TestPrefectureByPostalCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"1010051", "東京都"},
		{"5320011", "大阪府"},
		{"0600001", "北海道"},
		{"9800001", "宮城県"},
		{"2200012", "神奈川県"},
		{"4600002", "愛知県"},
		{"8120011", "福岡県"},
		{"9000001", "沖縄県"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pref, ok := PrefectureByPostalCode(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.want, pref.Name)
		})
	}

	_, ok := PrefectureByPostalCode("101")
	assert.False(t, ok)
}

func TestPrefectureTable(t *testing.T) {
	prefs := Prefectures()
	require.Len(t, prefs, 47)
	assert.Equal(t, "北海道", prefs[0].Name)
	assert.Equal(t, "沖縄県", prefs[46].Name)

	tokyo, ok := PrefectureByID(13)
	require.True(t, ok)
	assert.Equal(t, "東京都", tokyo.Name)
	assert.Equal(t, "関東", tokyo.Region)

	_, ok = PrefectureByID(48)
	assert.False(t, ok)
}
