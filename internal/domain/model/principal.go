package model

type PrincipalKind string

const (
	KindUser  PrincipalKind = "user"
	KindAdmin PrincipalKind = "admin"
)

// Principal is the authenticated identity bound to a session token.
type Principal struct {
	Kind     PrincipalKind `json:"kind"`
	ID       int64         `json:"id"`
	Username string        `json:"username"`
}

func (p Principal) IsAdmin() bool {
	return p.Kind == KindAdmin
}
