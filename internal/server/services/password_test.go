package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "acceptable password",
			password: "Aa1!aa",
			want:     nil,
		},
		{
			name:     "empty password violates everything",
			password: "",
			want: []string{
				CodePasswordTooShort,
				CodePasswordRequiresDigit,
				CodePasswordRequiresLower,
				CodePasswordRequiresUpper,
				CodePasswordRequiresNonAlnum,
			},
		},
		{
			name:     "too short only",
			password: "Aa1!",
			want:     []string{CodePasswordTooShort},
		},
		{
			name:     "missing digit",
			password: "Aaaa!!",
			want:     []string{CodePasswordRequiresDigit},
		},
		{
			name:     "missing lowercase",
			password: "AAA11!",
			want:     []string{CodePasswordRequiresLower},
		},
		{
			name:     "missing uppercase",
			password: "aaa11!",
			want:     []string{CodePasswordRequiresUpper},
		},
		{
			name:     "missing symbol",
			password: "Aaa111",
			want:     []string{CodePasswordRequiresNonAlnum},
		},
		{
			name:     "multiple violations reported together",
			password: "aaaaaa",
			want: []string{
				CodePasswordRequiresDigit,
				CodePasswordRequiresUpper,
				CodePasswordRequiresNonAlnum,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}
