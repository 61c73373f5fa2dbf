package models

import (
	"fmt"
	"strings"
)

// Role is the permission class attached to a user. Values are stored as display strings.
type Role string

const (
	RoleAdmin           Role = "Admin"
	RoleUser            Role = "User"
	RoleGuest           Role = "Guest"
	RoleGrower          Role = "Grower"
	RoleDispensaryOwner Role = "Dispensary Owner"
	RoleSeedbankOwner   Role = "Seedbank Owner"
	RoleManager         Role = "Manager"
	RoleBudtender       Role = "Budtender"
	RoleLegalAdvisor    Role = "Legal Advisor"
	RoleCustomer        Role = "Customer"
	RoleOther           Role = "Other"
)

// DefaultRole is assigned at signup.
const DefaultRole = RoleCustomer

var allRoles = []Role{
	RoleAdmin, RoleUser, RoleGuest, RoleGrower, RoleDispensaryOwner, RoleSeedbankOwner,
	RoleManager, RoleBudtender, RoleLegalAdvisor, RoleCustomer, RoleOther,
}

// Capability is an action gated by role.
type Capability int

const (
	CapPostCompanyJobs Capability = iota
	CapUploadVideo
	CapPublishInstructional
	CapViewInstructional
	CapModerateAds
	CapManageRoles
)

var capabilityRoles = map[Capability][]Role{
	CapPostCompanyJobs:      {RoleDispensaryOwner, RoleGrower, RoleManager},
	CapUploadVideo:          {RoleCustomer, RoleDispensaryOwner, RoleGrower, RoleSeedbankOwner},
	CapPublishInstructional: {RoleDispensaryOwner, RoleGrower, RoleSeedbankOwner},
	CapViewInstructional:    {RoleDispensaryOwner, RoleGrower, RoleSeedbankOwner, RoleAdmin},
	CapModerateAds:          {RoleAdmin},
	CapManageRoles:          {RoleAdmin},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, allowed := range capabilityRoles[c] {
		if r == allowed {
			return true
		}
	}
	return false
}

// SelfAssignable reports whether a user may pick the role at signup.
func (r Role) SelfAssignable() bool {
	return r != RoleAdmin
}

// ParseRole matches a display string, ignoring case and surrounding space.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range allRoles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}
