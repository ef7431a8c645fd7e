package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Transactor     Transactor
	MemberRepo     MemberRepositoryFacade
	JourneyRepo    JourneyRepositoryFacade
	AuditLogRepo   AuditLogRepositoryFacade
	SettingsRepo   SettingsRepositoryFacade
	StatisticsRepo StatisticsRepository
}
