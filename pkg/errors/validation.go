package errors

import (
	"net"
	"strconv"
	"strings"
	"unicode"
)

// ValidateNamespace checks a cache namespace. Namespaces prefix every
// cache key, so they must be short plain names:
//   - 1 to 64 characters
//   - letters, digits, '-', '_' and '.' only
func ValidateNamespace(ns string) error {
	if ns == "" {
		return New(ErrCodeInvalidConfig, "namespace cannot be empty")
	}
	if len(ns) > 64 {
		return New(ErrCodeInvalidConfig, "namespace %q too long (max 64 characters)", ns)
	}
	for _, r := range ns {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_.", r) {
			continue
		}
		return New(ErrCodeInvalidConfig, "namespace %q contains %q", ns, r)
	}
	return nil
}

// ValidateAddr validates a host:port network address such as a Redis
// endpoint.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "address cannot be empty")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid address %q", addr)
	}
	if host == "" {
		return New(ErrCodeInvalidConfig, "address %q has no host", addr)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return New(ErrCodeInvalidConfig, "address %q has an invalid port", addr)
	}

	return nil
}
