package models

// Claim is a named attribute attached to an account. Claims are embedded in
// issued tokens and drive authorization checks (e.g. isadmin=true).
type Claim struct {
	Type  string
	Value string
}

// AdminClaim is the claim granted and revoked by the admin endpoints.
var AdminClaim = Claim{Type: "isadmin", Value: "true"}
