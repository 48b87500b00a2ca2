// Package qr builds, parses and renders the client QR payload.
// The payload query string cid=<id>&t=<token> is the client's whole credential.
package qr

import (
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels
const DefaultSize = 512

// BuildClientURL returns <origin>/<slug>/c?cid=<id>&t=<token>.
// An empty origin yields a root-relative URL.
func BuildClientURL(origin, slug, clientID, token string) string {
	q := url.Values{}
	q.Set("cid", clientID)
	q.Set("t", token)
	return strings.TrimRight(origin, "/") + "/" + slug + "/c?" + q.Encode()
}

// ParsePayload extracts the client id and token from a scanned payload.
// Full URLs, root-relative URLs and bare query strings are accepted.
func ParsePayload(payload string) (clientID, token string, ok bool) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", "", false
	}

	rawQuery := payload
	if i := strings.Index(payload, "?"); i >= 0 {
		rawQuery = payload[i+1:]
	}
	if i := strings.Index(rawQuery, "#"); i >= 0 {
		rawQuery = rawQuery[:i]
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", "", false
	}
	clientID = strings.TrimSpace(values.Get("cid"))
	token = strings.TrimSpace(values.Get("t"))
	if clientID == "" || token == "" {
		return "", "", false
	}
	return clientID, token, true
}

// PNG renders content as a QR code image
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
