package domain

import "net/http"

// Session is the authenticated state produced by the login handshake.
// It lives for one process run only and is never persisted: the cookie
// jar is in-memory and dies with the process.
type Session struct {
	SecToken string
	Cookies  http.CookieJar
}

// Close discards the session material.
func (s *Session) Close() {
	s.SecToken = ""
	s.Cookies = nil
}
