package attribution

import (
	"fmt"
	"strings"

	"driver-apply/pkg/models"
)

// DirectAccess is reported when no UTM source is present.
const DirectAccess = "直接アクセス"

// CoupangMediaName overrides attribution for the coupang campaign
// regardless of UTM values.
const CoupangMediaName = "Coupang採用特設LP"

// Fixed (source, medium) → media-name table used for internal reporting.
var mediaNames = map[string]string{
	"tiktok|ad":      "TikTok広告",
	"tiktok|organic": "TikTokオーガニック",
	"google|cpc":     "Google広告",
	"google|organic": "Google検索",
	"yahoo|cpc":      "Yahoo!広告",
	"line|ad":        "LINE広告",
	"meta|ad":        "Meta広告",
	"facebook|ad":    "Facebook広告",
	"instagram|ad":   "Instagram広告",
	"indeed|organic": "Indeed",
	"youtube|ad":     "YouTube広告",
	"smartnews|ad":   "SmartNews広告",
}

// MediaName derives the human-readable attribution label from UTM params.
// Unrecognized sources fall back to a generic "source(medium)" format so
// new channels still show up distinguishably in reports.
func MediaName(utm models.UTMParams) string {
	source := strings.ToLower(strings.TrimSpace(utm.Source))
	medium := strings.ToLower(strings.TrimSpace(utm.Medium))

	if source == "" {
		return DirectAccess
	}
	if name, ok := mediaNames[source+"|"+medium]; ok {
		return name
	}
	if medium == "" {
		return source
	}
	return fmt.Sprintf("%s(%s)", source, medium)
}
