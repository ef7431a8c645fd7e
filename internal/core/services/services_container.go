package services

import (
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/platform/config"
	"github.com/g2ix/basic-registration/internal/utils/optime"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	clock := optime.NewClock(cfg.OperatingLocation, nil)

	container := &portssvc.ServiceContainer{}

	// Settings first since the journey engine consults the checkout flag
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.AuditLogRepo, repos.Transactor,
		WithSettingsClock(clock))

	container.Journey = NewJourneyService(
		repos.JourneyRepo,
		repos.MemberRepo,
		repos.AuditLogRepo,
		container.Settings,
		repos.Transactor,
		WithJourneyClock(clock),
	)

	container.Member = NewMemberService(repos.MemberRepo, repos.JourneyRepo, repos.AuditLogRepo, repos.Transactor,
		WithMemberClock(clock))
	container.Statistics = NewStatisticsService(repos.StatisticsRepo, WithStatisticsClock(clock))
	container.AuditLog = NewAuditLogService(repos.AuditLogRepo, clock)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.JourneySvcFacade  = (*journeyService)(nil)
	_ portssvc.MemberSvcFacade   = (*memberService)(nil)
	_ portssvc.SettingsSvcFacade = (*settingsService)(nil)
)
