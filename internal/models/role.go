package models

import "strings"

type Role string

const (
	RoleVisitor   Role = "visitor"
	RoleExhibitor Role = "exhibitor"
	RolePartner   Role = "partner"
	RoleSpeaker   Role = "speaker"
	RoleAwardee   Role = "awardee"
)

// Roles is the fixed set of registrant collections, in resolver lookup order.
var Roles = []Role{RoleVisitor, RoleExhibitor, RolePartner, RoleSpeaker, RoleAwardee}

// ParseRole accepts singular and plural spellings ("visitor", "visitors")
// in any case and maps them onto the fixed role set.
func ParseRole(s string) (Role, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "s")
	for _, r := range Roles {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// Collection is the plural entity-type name used in ticket records
// and scan responses ("visitor" -> "visitors").
func (r Role) Collection() string {
	return string(r) + "s"
}
