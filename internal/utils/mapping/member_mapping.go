package mapping

import (
	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:      d.MemberID,
		CooperativeID: d.CooperativeID,
		FirstName:     d.FirstName,
		MiddleInitial: ToNullString(d.MiddleInitial),
		LastName:      d.LastName,
		WorkEmail:     ToNullString(d.WorkEmail),
		PersonalEmail: ToNullString(d.PersonalEmail),
		MemberType:    string(d.MemberType),
		Status:        string(d.Status),
		Eligibility:   string(d.Eligibility),
		RegisteredAt:  d.RegisteredAt,
		RowTimestamps: models.RowTimestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:      m.MemberID,
		CooperativeID: m.CooperativeID,
		FirstName:     m.FirstName,
		MiddleInitial: FromNullString(m.MiddleInitial),
		LastName:      m.LastName,
		WorkEmail:     FromNullString(m.WorkEmail),
		PersonalEmail: FromNullString(m.PersonalEmail),
		MemberType:    domain.MemberType(m.MemberType),
		Status:        domain.MemberStatus(m.Status),
		Eligibility:   domain.Eligibility(m.Eligibility),
		RegisteredAt:  m.RegisteredAt,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainMemberSlice converts a slice of model Members to a slice of domain Members
func ToDomainMemberSlice(ms []models.Member) []domain.Member {
	ds := make([]domain.Member, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMember(m)
	}
	return ds
}
