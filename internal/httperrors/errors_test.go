package httperrors

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tokenlogin/cli/internal/errors"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	dns := &net.DNSError{Err: "no such host", Name: "auth.invalid"}
	post := func(err error) error {
		return apperrors.Wrap(apperrors.TransportFailed, "post login", &url.Error{Op: "Post", URL: "http://x/api/users/login", Err: err})
	}

	tests := []struct {
		name string
		err  error
		want Cause
	}{
		{name: "nil", err: nil, want: CauseUnknown},
		{name: "plain", err: errors.New("boom"), want: CauseUnknown},
		{name: "refused", err: post(refused), want: CauseRefused},
		{name: "dns", err: post(&net.OpError{Op: "dial", Err: dns}), want: CauseDNS},
		{name: "deadline", err: post(context.DeadlineExceeded), want: CauseTimeout},
		{name: "net timeout", err: post(timeoutErr{}), want: CauseTimeout},
		{name: "canceled", err: post(context.Canceled), want: CauseCanceled},
		{name: "unknown authority", err: post(x509.UnknownAuthorityError{}), want: CauseTLS},
		{name: "5xx", err: apperrors.WithStatus(apperrors.TransportFailed, 503, "login failed: 503"), want: CauseServerStatus},
		{name: "404", err: apperrors.WithStatus(apperrors.TransportFailed, 404, "login failed: 404 page not found"), want: CauseUnexpectedStatus},
		{
			name: "body mentioning 500 is not a 5xx",
			err:  apperrors.WithStatus(apperrors.TransportFailed, 418, "login failed: 418 only 500 teapots left"),
			want: CauseUnexpectedStatus,
		},
		{
			name: "message text alone is not trusted",
			err:  apperrors.New(apperrors.TransportFailed, "login failed: 500 internal server error"),
			want: CauseUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestDescribe_NotFoundIsNotUnreachable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	err := apperrors.WithStatus(apperrors.TransportFailed, 404, "login failed: 404 404 page not found")
	out := Describe(err, "logging in", "127.0.0.1:8080")

	assert.NotContains(t, out, "Cannot connect")
	assert.NotContains(t, out, "accessible from your network")
	assert.Contains(t, out, "HTTP 404")
	assert.Contains(t, out, "no login endpoint")
	assert.Contains(t, out, "127.0.0.1:8080 answered")
}

func TestDescribe(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "server error",
			err:  apperrors.WithStatus(apperrors.TransportFailed, 502, "login failed: 502"),
			want: []string{"Server error (HTTP 502) while logging in", "were not checked"},
		},
		{
			name: "refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			want: []string{"Connection refused", "localhost:8080 is not accepting"},
		},
		{
			name: "unknown",
			err:  errors.New("EOF"),
			want: []string{"Cannot connect", "Details: EOF"},
		},
		{
			name: "details are masked",
			err:  errors.New("pw=hunter2"),
			want: []string{"Details: pw=***"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Describe(tt.err, "logging in", "localhost:8080")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, nil, "logging in", "localhost"))
	assert.Empty(t, buf.String())

	base := fmt.Errorf("post: %w", context.DeadlineExceeded)
	err := Report(&buf, base, "logging in", "localhost")
	assert.ErrorIs(t, err, base)
	assert.Contains(t, buf.String(), "timeout")
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "localhost:8080", ExtractHostFromURL("http://localhost:8080/api"))
	assert.Equal(t, "server", ExtractHostFromURL("not a url"))
	assert.Equal(t, "server", ExtractHostFromURL("%zz"))
}
