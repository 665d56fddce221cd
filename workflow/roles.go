package workflow

import "fmt"

// Role is the closed set of role assignments a profile can carry. The wire
// names ("User", "ExCom", "Admin") come from the identity service.
type Role string

const (
	RoleMember   Role = "User"
	RoleApprover Role = "ExCom"
	RoleAdmin    Role = "Admin"
)

func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleMember, RoleApprover, RoleAdmin:
		return Role(name), nil
	}
	return "", fmt.Errorf("unknown role %q", name)
}

// Capabilities are derived permissions. Roles are additive, never
// hierarchical: Admin does not inherit the Approver's validate capability.
type Capabilities struct {
	CanNominate   bool
	CanValidate   bool
	CanAdminister bool
}

// CapabilitiesFor derives capabilities from a role set. Unknown role names
// are ignored, so an unresolvable caller ends up with no capabilities.
func CapabilitiesFor(roles []string) Capabilities {
	var caps Capabilities
	for _, name := range roles {
		role, err := ParseRole(name)
		if err != nil {
			continue
		}
		switch role {
		case RoleMember:
			caps.CanNominate = true
		case RoleApprover:
			caps.CanNominate = true
			caps.CanValidate = true
		case RoleAdmin:
			caps.CanNominate = true
			caps.CanAdminister = true
		}
	}
	return caps
}
