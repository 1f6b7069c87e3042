package branch

import (
	"errors"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"testing"

	"github.com/google/uuid"
)

func TestVisibleBranchesOwnerSeesAll(t *testing.T) {
	t.Parallel()

	all := []*entities.Branch{
		{ID: uuid.New(), Name: "Central"},
		{ID: uuid.New(), Name: "North"},
		{ID: uuid.New(), Name: "South"},
	}
	scope := Scope{UserID: uuid.NewString(), Role: domain.RoleOwner}

	visible := VisibleBranches(scope, all)
	if len(visible) != len(all) {
		t.Fatalf("expected owner to see %d branches, got %d", len(all), len(visible))
	}
}

func TestVisibleBranchesStaffSeesExactlyOne(t *testing.T) {
	t.Parallel()

	all := []*entities.Branch{
		{ID: uuid.New(), Name: "Central"},
		{ID: uuid.New(), Name: "North"},
		{ID: uuid.New(), Name: "South"},
	}
	scope := Scope{UserID: uuid.NewString(), Role: domain.RoleStaff, BranchID: all[1].ID.String()}

	visible := VisibleBranches(scope, all)
	if len(visible) != 1 {
		t.Fatalf("expected staff to see exactly 1 branch, got %d", len(visible))
	}
	if visible[0].Name != "North" {
		t.Fatalf("expected assigned branch North, got %s", visible[0].Name)
	}
}

func TestVisibleBranchesUnassignedStaffSeesNone(t *testing.T) {
	t.Parallel()

	all := []*entities.Branch{{ID: uuid.New(), Name: "Central"}}
	scope := Scope{UserID: uuid.NewString(), Role: domain.RoleStaff}

	if visible := VisibleBranches(scope, all); len(visible) != 0 {
		t.Fatalf("expected no visible branches, got %d", len(visible))
	}
}

func TestResolveBranchID(t *testing.T) {
	t.Parallel()

	own := uuid.NewString()
	other := uuid.NewString()

	tests := []struct {
		name      string
		scope     Scope
		requested string
		want      string
		wantErr   error
	}{
		{
			name:      "owner must pick a branch",
			scope:     Scope{Role: domain.RoleOwner},
			requested: "",
			wantErr:   domain.ErrBranchRequired,
		},
		{
			name:      "owner gets the requested branch",
			scope:     Scope{Role: domain.RoleOwner},
			requested: other,
			want:      other,
		},
		{
			name:      "staff falls back to own branch",
			scope:     Scope{Role: domain.RoleStaff, BranchID: own},
			requested: "",
			want:      own,
		},
		{
			name:      "staff may name own branch explicitly",
			scope:     Scope{Role: domain.RoleStaff, BranchID: own},
			requested: own,
			want:      own,
		},
		{
			name:      "staff cannot reach another branch",
			scope:     Scope{Role: domain.RoleStaff, BranchID: own},
			requested: other,
			wantErr:   domain.ErrBranchNotVisible,
		},
		{
			name:      "staff without assignment sees nothing",
			scope:     Scope{Role: domain.RoleStaff},
			requested: other,
			wantErr:   domain.ErrBranchNotVisible,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveBranchID(tt.scope, tt.requested)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected branch %s, got %s", tt.want, got)
			}
		})
	}
}
