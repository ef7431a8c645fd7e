package sqlite

import (
	"database/sql"

	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Transactor:     newSQLTransactor(db),
		MemberRepo:     newSQLMemberRepository(db),
		JourneyRepo:    newSQLJourneyRepository(db),
		AuditLogRepo:   newSQLAuditLogRepository(db),
		SettingsRepo:   newSQLSettingsRepository(db),
		StatisticsRepo: newSQLStatisticsRepository(db),
	}
}
