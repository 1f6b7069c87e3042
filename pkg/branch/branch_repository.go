package branch

import (
	"context"
	"kedaistock-backend/entities"

	"gorm.io/gorm"
)

type (
	BranchRepository interface {
		CreateBranch(ctx context.Context, branch *entities.Branch) error
		GetBranches(ctx context.Context) ([]*entities.Branch, error)
		GetBranchByID(ctx context.Context, id string) (*entities.Branch, error)
		UpdateBranch(ctx context.Context, branch *entities.Branch) error
		DeleteBranch(ctx context.Context, id string) error
		CountBranchReferences(ctx context.Context, id string) (int64, error)

		CreateStaffMember(ctx context.Context, staff *entities.StaffMember) error
		GetStaffMembers(ctx context.Context, branchID string) ([]*entities.StaffMember, error)
		GetStaffMemberByID(ctx context.Context, id string) (*entities.StaffMember, error)
		DeleteStaffMember(ctx context.Context, id string) error
	}

	branchRepository struct {
		db *gorm.DB
	}
)

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) CreateBranch(ctx context.Context, branch *entities.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) GetBranches(ctx context.Context) ([]*entities.Branch, error) {
	var branches []*entities.Branch
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) GetBranchByID(ctx context.Context, id string) (*entities.Branch, error) {
	var branch entities.Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) UpdateBranch(ctx context.Context, branch *entities.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) DeleteBranch(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Branch{}).Error
}

// CountBranchReferences reports how many stock items, staff members, and
// requests still point at the branch. Branch deletion is refused while the
// count is nonzero; the app layer does not rely on database cascades.
func (r *branchRepository) CountBranchReferences(ctx context.Context, id string) (int64, error) {
	var total int64

	var stockCount int64
	if err := r.db.WithContext(ctx).Model(&entities.StockItem{}).
		Where("branch_id = ?", id).Count(&stockCount).Error; err != nil {
		return 0, err
	}
	total += stockCount

	var staffCount int64
	if err := r.db.WithContext(ctx).Model(&entities.StaffMember{}).
		Where("branch_id = ?", id).Count(&staffCount).Error; err != nil {
		return 0, err
	}
	total += staffCount

	var requestCount int64
	if err := r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("branch_id = ?", id).Count(&requestCount).Error; err != nil {
		return 0, err
	}
	total += requestCount

	return total, nil
}

func (r *branchRepository) CreateStaffMember(ctx context.Context, staff *entities.StaffMember) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *branchRepository) GetStaffMembers(ctx context.Context, branchID string) ([]*entities.StaffMember, error) {
	var staff []*entities.StaffMember
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("staff_name ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *branchRepository) GetStaffMemberByID(ctx context.Context, id string) (*entities.StaffMember, error) {
	var staff entities.StaffMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *branchRepository) DeleteStaffMember(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.StaffMember{}).Error
}
