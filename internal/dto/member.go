package dto

import (
	"strings"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// CreateMemberRequest defines the data needed to register a member.
type CreateMemberRequest struct {
	CooperativeID string  `json:"cooperative_id" binding:"required,max=64"`
	FirstName     string  `json:"first_name" binding:"required,max=100"`
	MiddleInitial *string `json:"middle_initial" binding:"omitempty,max=5"`
	LastName      string  `json:"last_name" binding:"required,max=100"`
	WorkEmail     *string `json:"work_email" binding:"omitempty,email"`
	PersonalEmail *string `json:"personal_email" binding:"omitempty,email"`
	MemberType    string  `json:"member_type" binding:"required,oneof=Regular Associate"`
	Status        string  `json:"status" binding:"omitempty,oneof=active dormant"`
	Eligibility   string  `json:"eligibility" binding:"omitempty,oneof=eligible not_eligible"`
}

// UpdateMemberRequest defines a partial member update; omitted fields are unchanged.
type UpdateMemberRequest struct {
	CooperativeID *string `json:"cooperative_id" binding:"omitempty,min=1,max=64"`
	FirstName     *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	MiddleInitial *string `json:"middle_initial" binding:"omitempty,max=5"`
	LastName      *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	WorkEmail     *string `json:"work_email" binding:"omitempty,email"`
	PersonalEmail *string `json:"personal_email" binding:"omitempty,email"`
	MemberType    *string `json:"member_type" binding:"omitempty,oneof=Regular Associate"`
	Status        *string `json:"status" binding:"omitempty,oneof=active dormant"`
	Eligibility   *string `json:"eligibility" binding:"omitempty,oneof=eligible not_eligible"`
}

// ToDomain converts the request to a domain.MemberUpdate.
func (r UpdateMemberRequest) ToDomain() domain.MemberUpdate {
	u := domain.MemberUpdate{
		CooperativeID: trimPtr(r.CooperativeID),
		FirstName:     trimPtr(r.FirstName),
		MiddleInitial: trimPtr(r.MiddleInitial),
		LastName:      trimPtr(r.LastName),
		WorkEmail:     trimPtr(r.WorkEmail),
		PersonalEmail: trimPtr(r.PersonalEmail),
	}
	if r.MemberType != nil {
		t := domain.MemberType(*r.MemberType)
		u.MemberType = &t
	}
	if r.Status != nil {
		s := domain.MemberStatus(*r.Status)
		u.Status = &s
	}
	if r.Eligibility != nil {
		e := domain.Eligibility(*r.Eligibility)
		u.Eligibility = &e
	}
	return u
}

// ListMembersParams defines the query parameters for listing members.
type ListMembersParams struct {
	Search      string `form:"search" binding:"omitempty,max=100"`
	MemberType  string `form:"member_type" binding:"omitempty,oneof=Regular Associate"`
	Status      string `form:"status" binding:"omitempty,oneof=active dormant"`
	Eligibility string `form:"eligibility" binding:"omitempty,oneof=eligible not_eligible"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the query parameters to a member filter.
func (p ListMembersParams) ToFilter() domain.MemberFilter {
	return domain.MemberFilter{
		Search:      strings.TrimSpace(p.Search),
		MemberType:  domain.MemberType(p.MemberType),
		Status:      domain.MemberStatus(p.Status),
		Eligibility: domain.Eligibility(p.Eligibility),
		Page:        domain.Page{Limit: p.Limit, Offset: p.Offset},
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
