package auth

import "strings"

// HeaderName is the request header carrying the API key
const HeaderName = "Authentication"

const bearerPrefix = "Bearer "

// BearerToken extracts the token following the first "Bearer " in header
func BearerToken(header string) (string, bool) {
	idx := strings.Index(header, bearerPrefix)
	if idx < 0 {
		return "", false
	}
	token := header[idx+len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}
