// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"igvfcatalog/cli/internal/trpc"
)

// Class is the broad cause of a transport failure.
type Class int

const (
	ClassGeneric Class = iota
	ClassTimeout
	ClassDNS
	ClassConnectionRefused
	ClassTLS
	ClassServer
)

// FormatNetworkError converts technical HTTP/network errors into user-friendly messages.
// It detects common error types (timeout, DNS, connection refused, SSL, server errors)
// and writes helpful troubleshooting information to w.
func FormatNetworkError(w io.Writer, err error, context string, endpoint string) error {
	if err == nil {
		return nil
	}

	displayErrorMessage(w, err, context, ExtractHostFromURL(endpoint))

	return fmt.Errorf("network error: %w", err)
}

// Classify reports which kind of network failure err is.
func Classify(err error) Class {
	switch {
	case isTimeoutError(err):
		return ClassTimeout
	case isDNSError(err):
		return ClassDNS
	case isConnectionRefusedError(err):
		return ClassConnectionRefused
	case isSSLError(err):
		return ClassTLS
	case isServerError(err):
		return ClassServer
	default:
		return ClassGeneric
	}
}

// displayErrorMessage shows a formatted error message to the user based on error type.
func displayErrorMessage(w io.Writer, err error, context string, host string) {
	switch Classify(err) {
	case ClassTimeout:
		showTimeoutError(w, context)
	case ClassDNS:
		showDNSError(w, context, host)
	case ClassConnectionRefused:
		showConnectionRefusedError(w, context, host)
	case ClassTLS:
		showSSLError(w, context)
	case ClassServer:
		showServerError(w, context)
	default:
		showGenericError(w, context, host, err.Error())
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error indicates a server-side problem (5xx errors).
func isServerError(err error) bool {
	if err == nil {
		return false
	}

	var se *trpc.StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}

// showTimeoutError displays a user-friendly timeout error message.
func showTimeoutError(w io.Writer, context string) {
	pterm.Fprintln(w, fmt.Sprintf("⏱️  Timed out while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "The catalog server took too long to respond. This could mean:")
	pterm.Fprintln(w, "  • The query range is large and the server is still working on it")
	pterm.Fprintln(w, "  • The server is under heavy load")
	pterm.Fprintln(w, "  • The configured --timeout is too short")
	pterm.Fprintln(w)
}

// showDNSError displays a user-friendly DNS error message.
func showDNSError(w io.Writer, context string, host string) {
	pterm.Fprintln(w, fmt.Sprintf("🌐 Cannot resolve server address while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, fmt.Sprintf("Unable to look up %s. Please check:", host))
	pterm.Fprintln(w, "  • The host name in --url or the config file")
	pterm.Fprintln(w, "  • Your network and DNS settings")
	pterm.Fprintln(w)
}

// showConnectionRefusedError displays a user-friendly connection refused error message.
func showConnectionRefusedError(w io.Writer, context string, host string) {
	pterm.Fprintln(w, fmt.Sprintf("🚫 Connection refused while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, fmt.Sprintf("Nothing is accepting connections on %s. This could mean:", host))
	pterm.Fprintln(w, "  • The catalog server is not running")
	pterm.Fprintln(w, "  • It listens on a different port")
	pterm.Fprintln(w, "  • A firewall is blocking the connection")
	pterm.Fprintln(w)
}

// showSSLError displays a user-friendly SSL/TLS error message.
func showSSLError(w io.Writer, context string) {
	pterm.Fprintln(w, fmt.Sprintf("🔒 Secure connection failed while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Cannot establish a secure HTTPS connection. This could mean:")
	pterm.Fprintln(w, "  • The server certificate is not trusted")
	pterm.Fprintln(w, "  • The endpoint speaks plain HTTP; try an http:// URL")
	pterm.Fprintln(w, "  • The system clock is incorrect")
	pterm.Fprintln(w)
}

// showServerError displays a user-friendly server error message.
func showServerError(w io.Writer, context string) {
	pterm.Fprintln(w, fmt.Sprintf("⚠️  Server error while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "The catalog server or a proxy in front of it failed to handle the request.")
	pterm.Fprintln(w, "Check the server logs and try again.")
	pterm.Fprintln(w)
}

// showGenericError displays a generic error message for unrecognized errors.
func showGenericError(w io.Writer, context string, host string, errDetails string) {
	pterm.Fprintln(w, fmt.Sprintf("❌ Cannot reach the catalog at %s while %s", host, context))
	pterm.Fprintln(w)

	if errDetails != "" {
		shortErr := errDetails
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Fprintln(w, pterm.Gray("Technical details: "+shortErr))
		pterm.Fprintln(w)
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
