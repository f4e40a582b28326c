package db

import (
	"context"
	"errors"
	"time"

	"librarysystem/models"

	"gorm.io/gorm"
)

var ErrMemberNotFound = errors.New("member not found")

type ListMembersResult struct {
	Members []models.Member `json:"members"`
	Total   int64           `json:"total"`
}

func (r *Repo) ListMembers(ctx context.Context) (ListMembersResult, error) {
	var members []models.Member
	if err := r.DB.WithContext(ctx).
		Order("membership_date DESC").
		Find(&members).Error; err != nil {
		return ListMembersResult{}, err
	}
	return ListMembersResult{Members: members, Total: int64(len(members))}, nil
}

func (r *Repo) FindMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	var m models.Member
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) CreateMember(ctx context.Context, m *models.Member) error {
	m.MembershipDate = time.Now().UTC()
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	return r.DB.WithContext(ctx).Create(m).Error
}

type UpdateMemberInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Status  string
}

func (r *Repo) UpdateMember(ctx context.Context, id uint, in UpdateMemberInput) (*models.Member, error) {
	res := r.DB.WithContext(ctx).Model(&models.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":    in.Name,
			"email":   in.Email,
			"phone":   in.Phone,
			"address": in.Address,
			"status":  in.Status,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMemberNotFound
	}
	return r.FindMemberByID(ctx, id)
}

func (r *Repo) DeleteMember(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Member{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
