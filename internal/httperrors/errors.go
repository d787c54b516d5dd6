// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains failed calls to the login server in terms a user
// can act on. Failures are classified from the error chain (HTTP status
// recorded by the backend, context errors, net and TLS error types), never by
// matching on message text.
package httperrors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/logging"
)

// Cause is the user-facing reason a request failed.
type Cause int

const (
	// CauseUnknown covers transport failures with no recognizable cause.
	CauseUnknown Cause = iota
	// CauseTimeout means no answer arrived within the request timeout.
	CauseTimeout
	// CauseCanceled means the request was abandoned by the user.
	CauseCanceled
	// CauseDNS means the host name did not resolve.
	CauseDNS
	// CauseRefused means nothing listens at the host and port.
	CauseRefused
	// CauseTLS means the secure connection could not be set up.
	CauseTLS
	// CauseServerStatus means the server answered with a 5xx status.
	CauseServerStatus
	// CauseUnexpectedStatus means the server answered with some other
	// non-success status, usually because the base URL is wrong.
	CauseUnexpectedStatus
)

// Classify maps err to a Cause. A recorded HTTP status wins over everything
// else: the server was reached.
func Classify(err error) Cause {
	if err == nil {
		return CauseUnknown
	}
	if status := apperrors.StatusOf(err); status != 0 {
		if status >= http.StatusInternalServerError {
			return CauseServerStatus
		}
		return CauseUnexpectedStatus
	}

	switch {
	case errors.Is(err, context.Canceled):
		return CauseCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CauseTimeout
	case isDNS(err):
		return CauseDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return CauseRefused
	case isTLS(err):
		return CauseTLS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CauseTimeout
	}
	return CauseUnknown
}

func isDNS(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isTLS(err error) bool {
	var (
		verify    *tls.CertificateVerificationError
		record    tls.RecordHeaderError
		authority x509.UnknownAuthorityError
		hostname  x509.HostnameError
		invalid   x509.CertificateInvalidError
	)
	return errors.As(err, &verify) ||
		errors.As(err, &record) ||
		errors.As(err, &authority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid)
}

// Describe renders the notice for err. action says what was being attempted
// ("logging in") and host names the server.
func Describe(err error, action, host string) string {
	var b strings.Builder
	title := pterm.NewStyle(pterm.FgRed, pterm.Bold)
	status := apperrors.StatusOf(err)

	switch Classify(err) {
	case CauseTimeout:
		b.WriteString(title.Sprintf("Connection timeout while %s", action) + "\n\n")
		fmt.Fprintf(&b, "%s took too long to respond. This could mean:\n", host)
		b.WriteString("  • Slow internet connection\n")
		b.WriteString("  • Server is under heavy load\n")
		b.WriteString("  • The timeout is too short (see 'tokenlogin config set timeout')\n")

	case CauseCanceled:
		b.WriteString(title.Sprintf("Cancelled while %s", action) + "\n\n")
		b.WriteString("The request was abandoned before the server answered. Nothing was saved.\n")

	case CauseDNS:
		b.WriteString(title.Sprintf("Cannot resolve server address while %s", action) + "\n\n")
		fmt.Fprintf(&b, "Unable to look up %s. Please check:\n", host)
		b.WriteString("  • The base URL is spelled correctly\n")
		b.WriteString("  • Your internet connection and DNS settings\n")

	case CauseRefused:
		b.WriteString(title.Sprintf("Connection refused while %s", action) + "\n\n")
		fmt.Fprintf(&b, "%s is not accepting connections. This could mean:\n", host)
		b.WriteString("  • The login server is not running\n")
		b.WriteString("  • Wrong base URL or port (see 'tokenlogin config show')\n")

	case CauseTLS:
		b.WriteString(title.Sprintf("Secure connection failed while %s", action) + "\n\n")
		fmt.Fprintf(&b, "The certificate presented by %s was not accepted. Check:\n", host)
		b.WriteString("  • Your system date and time\n")
		b.WriteString("  • Proxies that intercept HTTPS\n")

	case CauseServerStatus:
		b.WriteString(title.Sprintf("Server error (HTTP %d) while %s", status, action) + "\n\n")
		fmt.Fprintf(&b, "%s answered but failed to process the request.\n", host)
		b.WriteString("Your id and password were not checked. Please try again in a few minutes.\n")

	case CauseUnexpectedStatus:
		b.WriteString(title.Sprintf("Unexpected response (HTTP %d) while %s", status, action) + "\n\n")
		fmt.Fprintf(&b, "%s answered, but not as a login server.\n", host)
		if status == http.StatusNotFound {
			b.WriteString("There is no login endpoint at the configured base URL.\n")
		}
		b.WriteString("Check the base URL with 'tokenlogin config show'.\n")

	default:
		b.WriteString(title.Sprintf("Cannot connect to the login server while %s", action) + "\n\n")
		b.WriteString("Please check:\n")
		b.WriteString("  • Your internet connection\n")
		fmt.Fprintf(&b, "  • Whether %s is accessible from your network\n", host)
	}

	if err != nil {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Details: " + logging.Mask(err.Error())))
		b.WriteString("\n")
	}
	return b.String()
}

// Report writes the notice for err to w and returns err wrapped for the exit
// status. A nil err reports nothing.
func Report(w io.Writer, err error, action, host string) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Describe(err, action, host))
	return fmt.Errorf("network error: %w", err)
}

// ExtractHostFromURL extracts the host from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
