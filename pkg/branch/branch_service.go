package branch

import (
	"context"
	"errors"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BranchService interface {
		CreateBranch(ctx context.Context, req domain.CreateBranchRequest) (domain.BranchResponse, error)
		GetBranches(ctx context.Context, scope Scope) ([]domain.BranchResponse, error)
		UpdateBranch(ctx context.Context, id string, req domain.UpdateBranchRequest) (domain.BranchResponse, error)
		DeleteBranch(ctx context.Context, id string) error

		CreateStaffMember(ctx context.Context, scope Scope, req domain.CreateStaffRequest) (domain.StaffResponse, error)
		GetStaffMembers(ctx context.Context, scope Scope, branchID string) ([]domain.StaffResponse, error)
		DeleteStaffMember(ctx context.Context, scope Scope, id string) error
	}

	branchService struct {
		branchRepository BranchRepository
	}
)

func NewBranchService(branchRepository BranchRepository) BranchService {
	return &branchService{branchRepository: branchRepository}
}

func (s *branchService) CreateBranch(ctx context.Context, req domain.CreateBranchRequest) (domain.BranchResponse, error) {
	branch := &entities.Branch{
		ID:      uuid.New(),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := s.branchRepository.CreateBranch(ctx, branch); err != nil {
		return domain.BranchResponse{}, err
	}

	return toBranchResponse(branch), nil
}

func (s *branchService) GetBranches(ctx context.Context, scope Scope) ([]domain.BranchResponse, error) {
	all, err := s.branchRepository.GetBranches(ctx)
	if err != nil {
		return nil, err
	}

	visible := VisibleBranches(scope, all)

	response := make([]domain.BranchResponse, 0, len(visible))
	for _, b := range visible {
		response = append(response, toBranchResponse(b))
	}
	return response, nil
}

func (s *branchService) UpdateBranch(ctx context.Context, id string, req domain.UpdateBranchRequest) (domain.BranchResponse, error) {
	branch, err := s.branchRepository.GetBranchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BranchResponse{}, domain.ErrBranchNotFound
		}
		return domain.BranchResponse{}, err
	}

	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.Address != "" {
		branch.Address = req.Address
	}
	if req.Phone != "" {
		branch.Phone = req.Phone
	}

	if err := s.branchRepository.UpdateBranch(ctx, branch); err != nil {
		return domain.BranchResponse{}, err
	}

	return toBranchResponse(branch), nil
}

func (s *branchService) DeleteBranch(ctx context.Context, id string) error {
	if _, err := s.branchRepository.GetBranchByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBranchNotFound
		}
		return err
	}

	refs, err := s.branchRepository.CountBranchReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrBranchNotEmpty
	}

	return s.branchRepository.DeleteBranch(ctx, id)
}

func (s *branchService) CreateStaffMember(ctx context.Context, scope Scope, req domain.CreateStaffRequest) (domain.StaffResponse, error) {
	branchID, err := ResolveBranchID(scope, req.BranchID)
	if err != nil {
		return domain.StaffResponse{}, err
	}

	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return domain.StaffResponse{}, domain.ErrParseUUID
	}

	if _, err := s.branchRepository.GetBranchByID(ctx, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StaffResponse{}, domain.ErrBranchNotFound
		}
		return domain.StaffResponse{}, err
	}

	staff := &entities.StaffMember{
		ID:        uuid.New(),
		BranchID:  branchUUID,
		StaffName: req.StaffName,
		CreatedAt: time.Now(),
	}

	if err := s.branchRepository.CreateStaffMember(ctx, staff); err != nil {
		return domain.StaffResponse{}, err
	}

	return toStaffResponse(staff), nil
}

func (s *branchService) GetStaffMembers(ctx context.Context, scope Scope, branchID string) ([]domain.StaffResponse, error) {
	resolved, err := ResolveBranchID(scope, branchID)
	if err != nil {
		return nil, err
	}

	staff, err := s.branchRepository.GetStaffMembers(ctx, resolved)
	if err != nil {
		return nil, err
	}

	response := make([]domain.StaffResponse, 0, len(staff))
	for _, member := range staff {
		response = append(response, toStaffResponse(member))
	}
	return response, nil
}

func (s *branchService) DeleteStaffMember(ctx context.Context, scope Scope, id string) error {
	staff, err := s.branchRepository.GetStaffMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStaffNotFound
		}
		return err
	}

	if _, err := ResolveBranchID(scope, staff.BranchID.String()); err != nil {
		return err
	}

	return s.branchRepository.DeleteStaffMember(ctx, id)
}

func toBranchResponse(branch *entities.Branch) domain.BranchResponse {
	return domain.BranchResponse{
		ID:      branch.ID.String(),
		Name:    branch.Name,
		Address: branch.Address,
		Phone:   branch.Phone,
	}
}

func toStaffResponse(staff *entities.StaffMember) domain.StaffResponse {
	return domain.StaffResponse{
		ID:        staff.ID.String(),
		BranchID:  staff.BranchID.String(),
		StaffName: staff.StaffName,
		CreatedAt: staff.CreatedAt,
	}
}
