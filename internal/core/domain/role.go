package domain

import (
	"fmt"
	"strings"
)

// Role identifies what a user is allowed to do within their company domain.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleFinance  Role = "FINANCE"
	RoleAdmin    Role = "ADMIN"
)

// approvalChain is the fixed, ordered sequence of roles an expense must
// traverse before it is fully approved.
var approvalChain = []Role{RoleManager, RoleFinance, RoleAdmin}

// FirstApproverRole returns the role that receives a freshly submitted expense.
func FirstApproverRole() Role {
	return approvalChain[0]
}

// FinalApproverRole returns the role whose approval is terminal.
func FinalApproverRole() Role {
	return approvalChain[len(approvalChain)-1]
}

// NextApproverRole returns the role that follows the given one in the approval
// chain. ok is false when the role is the final approver or is not part of the
// chain at all; callers must distinguish those two cases via IsApprover.
func NextApproverRole(r Role) (next Role, ok bool) {
	for i, role := range approvalChain {
		if role == r && i+1 < len(approvalChain) {
			return approvalChain[i+1], true
		}
	}
	return "", false
}

// IsApprover reports whether the role participates in the approval chain.
func (r Role) IsApprover() bool {
	for _, role := range approvalChain {
		if role == r {
			return true
		}
	}
	return false
}

// Authority renders the role as a Spring-style authority string, which is the
// form the request context and downstream services expect.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	case RoleFinance:
		return RoleFinance, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
