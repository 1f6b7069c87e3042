package branch

import (
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
)

// Scope is the caller's branch capability, resolved once from the auth
// claims. Every component that loads branch-scoped data goes through it so
// visibility rules cannot drift between call sites.
type Scope struct {
	UserID   string
	Role     string
	BranchID string
}

// VisibleBranches returns the subset of all branches the scope may see.
// Owners see every branch; any other role sees exactly its assigned branch.
func VisibleBranches(scope Scope, all []*entities.Branch) []*entities.Branch {
	if scope.Role == domain.RoleOwner {
		return all
	}

	visible := make([]*entities.Branch, 0, 1)
	for _, b := range all {
		if b.ID.String() == scope.BranchID {
			visible = append(visible, b)
		}
	}
	return visible
}

// ResolveBranchID validates that the requested branch is visible to the
// scope before any query runs. An empty request falls back to the scope's
// own branch for non-owners.
func ResolveBranchID(scope Scope, requested string) (string, error) {
	if scope.Role == domain.RoleOwner {
		if requested == "" {
			return "", domain.ErrBranchRequired
		}
		return requested, nil
	}

	if scope.BranchID == "" {
		return "", domain.ErrBranchNotVisible
	}
	if requested == "" || requested == scope.BranchID {
		return scope.BranchID, nil
	}
	return "", domain.ErrBranchNotVisible
}
