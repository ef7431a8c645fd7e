package pgsql

import (
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Transactor:     newPgxTransactor(dbPool),
		MemberRepo:     newPgxMemberRepository(dbPool),
		JourneyRepo:    newPgxJourneyRepository(dbPool),
		AuditLogRepo:   newPgxAuditLogRepository(dbPool),
		SettingsRepo:   newPgxSettingsRepository(dbPool),
		StatisticsRepo: newPgxStatisticsRepository(dbPool),
	}
}
