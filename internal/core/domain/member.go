package domain

import "time"

// MemberType distinguishes the cooperative membership classes.
type MemberType string

const (
	MemberTypeRegular   MemberType = "Regular"
	MemberTypeAssociate MemberType = "Associate"
)

// Valid reports whether t is one of the known member types.
func (t MemberType) Valid() bool {
	return t == MemberTypeRegular || t == MemberTypeAssociate
}

// MemberStatus is the membership standing of a member.
type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "active"
	MemberStatusDormant MemberStatus = "dormant"
)

func (s MemberStatus) Valid() bool {
	return s == MemberStatusActive || s == MemberStatusDormant
}

// Eligibility decides whether a member may check in to the assembly.
type Eligibility string

const (
	Eligible    Eligibility = "eligible"
	NotEligible Eligibility = "not_eligible"
)

func (e Eligibility) Valid() bool {
	return e == Eligible || e == NotEligible
}

// Member is an entry of the cooperative's member registry.
type Member struct {
	MemberID      string       `json:"member_id"`      // Primary Key (UUID)
	CooperativeID string       `json:"cooperative_id"` // Unique, human facing
	FirstName     string       `json:"first_name"`
	MiddleInitial *string      `json:"middle_initial,omitempty"`
	LastName      string       `json:"last_name"`
	WorkEmail     *string      `json:"work_email,omitempty"`
	PersonalEmail *string      `json:"personal_email,omitempty"`
	MemberType    MemberType   `json:"member_type"`
	Status        MemberStatus `json:"status"`
	Eligibility   Eligibility  `json:"eligibility"`
	RegisteredAt  time.Time    `json:"registered_at"`
	Timestamps
}

// IsEligible reports whether the member may check in.
func (m Member) IsEligible() bool {
	return m.Eligibility == Eligible
}

// FullName renders "First M. Last".
func (m Member) FullName() string {
	if m.MiddleInitial != nil && *m.MiddleInitial != "" {
		return m.FirstName + " " + *m.MiddleInitial + ". " + m.LastName
	}
	return m.FirstName + " " + m.LastName
}

// MemberFilter narrows a member listing. Empty fields do not filter.
type MemberFilter struct {
	Search      string
	MemberType  MemberType
	Status      MemberStatus
	Eligibility Eligibility
	Page
}

// MemberUpdate is a partial update; nil fields are left unchanged.
type MemberUpdate struct {
	CooperativeID *string
	FirstName     *string
	MiddleInitial *string
	LastName      *string
	WorkEmail     *string
	PersonalEmail *string
	MemberType    *MemberType
	Status        *MemberStatus
	Eligibility   *Eligibility
}

// Apply returns a copy of m with the non-nil fields of u applied.
func (u MemberUpdate) Apply(m Member) Member {
	if u.CooperativeID != nil {
		m.CooperativeID = *u.CooperativeID
	}
	if u.FirstName != nil {
		m.FirstName = *u.FirstName
	}
	if u.MiddleInitial != nil {
		m.MiddleInitial = u.MiddleInitial
	}
	if u.LastName != nil {
		m.LastName = *u.LastName
	}
	if u.WorkEmail != nil {
		m.WorkEmail = u.WorkEmail
	}
	if u.PersonalEmail != nil {
		m.PersonalEmail = u.PersonalEmail
	}
	if u.MemberType != nil {
		m.MemberType = *u.MemberType
	}
	if u.Status != nil {
		m.Status = *u.Status
	}
	if u.Eligibility != nil {
		m.Eligibility = *u.Eligibility
	}
	return m
}
