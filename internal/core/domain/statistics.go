package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeCounts splits a count by member type.
type TypeCounts struct {
	Regular   int `json:"regular"`
	Associate int `json:"associate"`
	Total     int `json:"total"`
}

// Statistics is the population/attendance projection for one operating day.
type Statistics struct {
	Date             string          `json:"date"`
	MemberPopulation TypeCounts      `json:"memberPopulation"`
	AttendedAssembly TypeCounts      `json:"attendedAssembly"`
	AttendanceRate   decimal.Decimal `json:"attendanceRate"` // percent, 2dp
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// JourneyStats counts journey states and stub usage for one operating day.
type JourneyStats struct {
	Date                 string `json:"date"`
	TotalJourneys        int    `json:"total_journeys"`
	CheckedIn            int    `json:"checked_in"`
	Complete             int    `json:"complete"`
	MealStubsIssued      int    `json:"meal_stubs_issued"`
	TransportStubsIssued int    `json:"transportation_stubs_issued"`
	Claimed              int    `json:"claimed"`
	LostStubs            int    `json:"lost_stubs"`
	IncorrectStubs       int    `json:"incorrect_stubs"`
	DifferentStubs       int    `json:"different_stubs"`
	ManualForms          int    `json:"manual_forms"`
}

// TerminalClaims counts completed journeys per check-out terminal.
type TerminalClaims struct {
	Terminal  string `json:"terminal"`
	Total     int    `json:"total"`
	Normal    int    `json:"normal"`
	Anomalous int    `json:"anomalous"`
}

// ClaimsSummary is the per-terminal claim breakdown for one operating day.
type ClaimsSummary struct {
	Date      string           `json:"date"`
	Total     int              `json:"total"`
	Terminals []TerminalClaims `json:"terminals"`
}

// AttendanceRate returns attended/total as a percentage rounded to 2 places.
func AttendanceRate(attended, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(attended)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
}
