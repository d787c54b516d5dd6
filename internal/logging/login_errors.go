// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	apperrors "tokenlogin/cli/internal/errors"
)

// FormatLoginFailure formats a failed login attempt in a user-friendly way.
// detail is the server- or transport-provided message; it is masked before display.
func FormatLoginFailure(kind apperrors.Kind, detail string) string {
	var builder strings.Builder

	// Title
	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Login failed"))
	builder.WriteString("\n\n")

	switch kind {
	case apperrors.CredentialsRejected:
		builder.WriteString("The server did not accept this id and password.\n")
		builder.WriteString("Check for typos and try again.\n")

	case apperrors.MalformedResponse:
		builder.WriteString("The server answered with something that is not a login response.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • The configured base URL points at the wrong service\n")
		builder.WriteString("  • A proxy replaced the response with an HTML page\n")

	case apperrors.TransportFailed:
		builder.WriteString("The login server could not be reached.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • Your network connection is down\n")
		builder.WriteString("  • The server is not running at the configured base URL\n")

	case apperrors.StorageFailed, apperrors.StorageUnavailable:
		builder.WriteString("The session token could not be read or saved locally.\n")
		builder.WriteString("Check that the keyring backend is unlocked and writable.\n")

	default:
		builder.WriteString("The login attempt did not succeed.\n")
	}

	builder.WriteString("\n")
	builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Run 'tokenlogin login' to try again"))
	builder.WriteString("\n")

	if strings.TrimSpace(detail) != "" {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Details: " + Mask(detail)))
	}

	return builder.String()
}

// PresentLoginFailure writes a formatted login failure to w.
func PresentLoginFailure(w io.Writer, kind apperrors.Kind, detail string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, FormatLoginFailure(kind, detail))
	fmt.Fprintln(w)
}
