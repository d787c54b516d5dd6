// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Password parameter",
			input:    "password=secret123",
			expected: "password=***",
		},
		{
			name:     "Short pw parameter",
			input:    "id=test&pw=test1234",
			expected: "id=test&pw=***",
		},
		{
			name:     "Token",
			input:    "token=abc123xyz",
			expected: "token=***",
		},
		{
			name:     "Bearer header",
			input:    "Authorization: Bearer eyJhbGciOi.J9.sig",
			expected: "Authorization: Bearer ***",
		},
		{
			name:     "JSON login body",
			input:    `{"id":"test","pw":"test1234"}`,
			expected: `{"id":"test","pw":"***"}`,
		},
		{
			name:     "JSON envelope",
			input:    `{"result":"SUCCESS","data":"tok-abc","errorMessage":""}`,
			expected: `{"result":"SUCCESS","data":"***","errorMessage":""}`,
		},
		{
			name:     "Nothing sensitive",
			input:    "POST /api/users/login 200",
			expected: "POST /api/users/login 200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Mask(tt.input)
			if result != tt.expected {
				t.Errorf("Mask() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "***"},
		{input: "tok-abc", expected: "***"},
		{input: "0123456789abcdef", expected: "0123…cdef"},
		{input: "токен-абвгдеёж", expected: "токе…деёж"},
		{input: "ééééé", expected: "***"},
	}

	for _, tt := range tests {
		if got := MaskToken(tt.input); got != tt.expected {
			t.Errorf("MaskToken(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
