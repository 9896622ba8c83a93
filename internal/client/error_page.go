package client

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const maxDetailLength = 200

// errorDetail pulls a short human readable reason out of an error response.
// Reverse proxies in front of the API answer with HTML pages, the API itself
// with JSON.
func errorDetail(contentType, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	switch {
	case strings.Contains(contentType, "json") || strings.HasPrefix(body, "{"):
		if detail := jsonErrorDetail(body); detail != "" {
			return detail
		}
	case strings.Contains(contentType, "html") || strings.HasPrefix(body, "<"):
		if detail := htmlErrorDetail(body); detail != "" {
			return detail
		}
	}

	return truncate(collapseSpaces(body))
}

func jsonErrorDetail(body string) string {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	for _, key := range []string{"error", "message", "detail"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return truncate(v)
		}
	}
	return ""
}

func htmlErrorDetail(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		log.Debugf("Failed to parse HTML error page: %v", err)
		return ""
	}

	if title := collapseSpaces(doc.Find("title").First().Text()); title != "" {
		return truncate(title)
	}
	if heading := collapseSpaces(doc.Find("h1, h2").First().Text()); heading != "" {
		return truncate(heading)
	}
	return truncate(collapseSpaces(doc.Find("body").Text()))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxDetailLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDetailLength]) + "…"
}
