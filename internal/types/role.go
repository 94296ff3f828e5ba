package types

// Role is the closed set of account roles. Dispatch on it through
// RequireRole middleware, never on raw strings.
type Role string

const (
	RoleRespondent Role = "respondent"
	RoleCoach      Role = "coach"
	RolePartner    Role = "partner"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleRespondent, RoleCoach, RolePartner, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
