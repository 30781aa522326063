package services

import (
	"fmt"
	"meeting-point-service/internal/domain"
	"net/url"
	"strconv"
	"strings"
)

// ShareLinks holds ready-to-open links announcing a meeting point.
type ShareLinks struct {
	MapURL   string
	Message  string
	WhatsApp string
	Email    string
	SMS      string
}

// BuildShareLinks builds the map link for point and the channel links that
// carry it in a short message.
func BuildShareLinks(point domain.Coordinates) ShareLinks {
	mapURL := fmt.Sprintf(
		"https://www.google.com/maps/search/?api=1&query=%s,%s",
		formatCoord(point.Lat), formatCoord(point.Lng),
	)
	message := "Check out this meeting point I found: " + mapURL
	enc := encodeComponent(message)

	return ShareLinks{
		MapURL:   mapURL,
		Message:  message,
		WhatsApp: "https://wa.me/?text=" + enc,
		Email:    "mailto:?subject=Meeting%20Point&body=" + enc,
		SMS:      "sms:?body=" + enc,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// encodeComponent percent-encodes s the way browsers encode URI components:
// spaces become %20, not +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
