package mapping

import (
	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/models"
)

// ToModelJourney converts a domain Journey to a model Journey
func ToModelJourney(d domain.Journey) models.Journey {
	return models.Journey{
		JourneyID:                d.JourneyID,
		MemberID:                 d.MemberID,
		ControlNumber:            d.ControlNumber,
		CheckInDate:              d.CheckInDate,
		CheckInTime:              d.CheckInTime,
		CheckInTerminal:          d.CheckInTerminal,
		MealStubIssued:           d.MealStubIssued,
		TransportationStubIssued: d.TransportationStubIssued,
		CheckOutTime:             ToNullTime(d.CheckOutTime),
		CheckOutTerminal:         ToNullString(d.CheckOutTerminal),
		Claimed:                  d.Claimed,
		LostStub:                 d.LostStub,
		IncorrectStub:            d.IncorrectStub,
		DifferentStubNumber:      d.DifferentStubNumber,
		DifferentStubValue:       ToNullString(d.DifferentStubValue),
		ManualFormSigned:         d.ManualFormSigned,
		OverrideReason:           ToNullString(d.OverrideReason),
		StaffID:                  ToNullString(d.StaffID),
		Status:                   string(d.Status),
		RowTimestamps: models.RowTimestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainJourney converts a model Journey to a domain Journey
func ToDomainJourney(m models.Journey) domain.Journey {
	return domain.Journey{
		JourneyID:                m.JourneyID,
		MemberID:                 m.MemberID,
		ControlNumber:            m.ControlNumber,
		CheckInDate:              m.CheckInDate,
		CheckInTime:              m.CheckInTime,
		CheckInTerminal:          m.CheckInTerminal,
		MealStubIssued:           m.MealStubIssued,
		TransportationStubIssued: m.TransportationStubIssued,
		CheckOutTime:             FromNullTime(m.CheckOutTime),
		CheckOutTerminal:         FromNullString(m.CheckOutTerminal),
		Claimed:                  m.Claimed,
		LostStub:                 m.LostStub,
		IncorrectStub:            m.IncorrectStub,
		DifferentStubNumber:      m.DifferentStubNumber,
		DifferentStubValue:       FromNullString(m.DifferentStubValue),
		ManualFormSigned:         m.ManualFormSigned,
		OverrideReason:           FromNullString(m.OverrideReason),
		StaffID:                  FromNullString(m.StaffID),
		Status:                   domain.JourneyStatus(m.Status),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainJourneyDetail converts a joined journey row to a domain JourneyDetail
func ToDomainJourneyDetail(m models.JourneyDetail) domain.JourneyDetail {
	return domain.JourneyDetail{
		Journey:       ToDomainJourney(m.Journey),
		CooperativeID: m.CooperativeID,
		FirstName:     m.FirstName,
		MiddleInitial: FromNullString(m.MiddleInitial),
		LastName:      m.LastName,
		MemberType:    domain.MemberType(m.MemberType),
	}
}

// ToDomainJourneyDetailSlice converts joined journey rows to domain JourneyDetails
func ToDomainJourneyDetailSlice(ms []models.JourneyDetail) []domain.JourneyDetail {
	ds := make([]domain.JourneyDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJourneyDetail(m)
	}
	return ds
}
