package app

import (
	"go.uber.org/fx"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/auth"
	"github.com/polijecare/polijecare_web/internal/service/complaint"
	"github.com/polijecare/polijecare_web/internal/service/content"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
	"github.com/polijecare/polijecare_web/internal/service/schedule"
	"github.com/polijecare/polijecare_web/internal/service/user"
	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/email"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAuthService,
		ProvideUserService,
		ProvideComplaintService,
		ProvideScheduleService,
		ProvideCounselingService,
		ProvideContentService,
	),
)

func ProvideAuthService(api *apiclient.Client, sessions session.Store, paseto *pasetotoken.Manager) auth.Service {
	return auth.New(api, sessions, paseto)
}

func ProvideUserService(api *apiclient.Client) user.Service {
	return user.New(api)
}

func ProvideComplaintService(api *apiclient.Client) complaint.Service {
	return complaint.New(api)
}

func ProvideScheduleService(api *apiclient.Client, resolver *counseling.Resolver) schedule.Service {
	return schedule.New(api, resolver)
}

func ProvideCounselingService(
	api *apiclient.Client,
	sessions session.Store,
	schedules schedule.Service,
	resolver *counseling.Resolver,
	cfg *config.Config,
) counselingsvc.Service {
	return counselingsvc.New(api, sessions, schedules, resolver, cfg)
}

func ProvideContentService(api *apiclient.Client, mail email.Sender, cfg *config.Config) (content.Service, error) {
	return content.New(api, mail, cfg)
}
