// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides structured logging, secret masking, and error presentation.
// It includes functions for masking sensitive information in log messages and
// formatting login failures for user-friendly display.
//
// Passwords and session tokens must never reach a log line or the terminal in
// clear text; everything user-controlled goes through Mask or MaskToken first.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)((?:password|pw)=)([^\s;&]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSONPass = regexp.MustCompile(`(?i)("(?:pw|password)"\s*:\s*)"(?:[^"\\]|\\.)*"`)
	reJSONData = regexp.MustCompile(`(?i)("(?:data|token)"\s*:\s*)"(?:[^"\\]|\\.)*"`)
)

// Mask replaces sensitive values in the input string with "***".
// It covers key=value pairs, bearer headers and the JSON login body/envelope.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONPass.ReplaceAllString(out, `$1"***"`)
	out = reJSONData.ReplaceAllString(out, `$1"***"`)
	return out
}

// MaskToken keeps the first and last four characters of a token so two tokens
// can be told apart on screen without revealing either.
func MaskToken(token string) string {
	r := []rune(token)
	if len(r) <= 8 {
		return "***"
	}
	return string(r[:4]) + "…" + string(r[len(r)-4:])
}
