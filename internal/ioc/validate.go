package ioc

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	domainRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	hashRe   = regexp.MustCompile(`^[a-fA-F0-9]+$`)
)

// hex digest lengths for md5, sha1, sha256, sha512
var hashLengths = map[int]bool{32: true, 40: true, 64: true, 128: true}

// Validate format-checks value against its declared type. Unknown types pass.
// A false result is advisory: callers keep the record and log the mismatch.
func Validate(value string, typ Type) bool {
	switch typ {
	case TypeIP:
		return validIP(value)
	case TypeSubnet:
		return validSubnet(value)
	case TypeURL:
		return validURL(value)
	case TypeDomain:
		return validDomain(value)
	case TypeHash:
		return validHash(value)
	default:
		return true
	}
}

func validIP(s string) bool {
	if s == "::" || s == "::1" {
		return true
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	if !strings.Contains(s, ":") {
		// dotted-quad only, reject partial forms net.ParseIP would take
		return strings.Count(s, ".") == 3
	}
	return true
}

func validSubnet(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return false
	}
	prefix, err := strconv.Atoi(parts[1])
	if err != nil || !validIP(parts[0]) {
		return false
	}
	maxPrefix := 32
	if strings.Contains(parts[0], ":") {
		maxPrefix = 128
	}
	return prefix >= 0 && prefix <= maxPrefix
}

func validURL(s string) bool {
	if absoluteURL(s) {
		return true
	}
	return absoluteURL("http://" + s)
}

func absoluteURL(s string) bool {
	u, err := url.Parse(s)
	// Hostname() strips any port, so "http://://" (Host ":") is rejected
	return err == nil && u.Scheme != "" && u.Hostname() != ""
}

func validDomain(s string) bool {
	return len(s) <= 253 && domainRe.MatchString(s)
}

func validHash(s string) bool {
	return hashLengths[len(s)] && hashRe.MatchString(s)
}
