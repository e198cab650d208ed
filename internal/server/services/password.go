package services

import "unicode"

// Password policy error codes surfaced to clients on registration. The
// names mirror the identity-framework codes the mobile and web clients
// already understand.
const (
	CodeDuplicateEmail           = "DuplicateEmail"
	CodePasswordTooShort         = "PasswordTooShort"
	CodePasswordRequiresDigit    = "PasswordRequiresDigit"
	CodePasswordRequiresLower    = "PasswordRequiresLower"
	CodePasswordRequiresUpper    = "PasswordRequiresUpper"
	CodePasswordRequiresNonAlnum = "PasswordRequiresNonAlphanumeric"
)

const minPasswordLength = 6

// ValidatePassword checks the password against the account policy and
// returns every violated rule as an error code. An empty slice means the
// password is acceptable.
func ValidatePassword(password string) []string {
	var codes []string

	if len(password) < minPasswordLength {
		codes = append(codes, CodePasswordTooShort)
	}

	var hasDigit, hasLower, hasUpper, hasNonAlnum bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasNonAlnum = true
		}
	}

	if !hasDigit {
		codes = append(codes, CodePasswordRequiresDigit)
	}
	if !hasLower {
		codes = append(codes, CodePasswordRequiresLower)
	}
	if !hasUpper {
		codes = append(codes, CodePasswordRequiresUpper)
	}
	if !hasNonAlnum {
		codes = append(codes, CodePasswordRequiresNonAlnum)
	}

	return codes
}
