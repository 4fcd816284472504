package cron

import (
	"github.com/robfig/cron/v3"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/pgk/nipsa"
)

// Service service interface
type Service interface {
	Start()
	Stop()
}

type service struct {
	cctx   *cctx.Context
	config *config.Configs
	cron   *cron.Cron
	nipsa  nipsa.Service
}

func NewService() Service {
	return &service{
		cctx:   cctx.New(),
		config: config.CF,
		cron:   cron.New(),
		nipsa:  nipsa.NewService(),
	}
}

func (s *service) Start() {
	logger.Log.Info("Cron init...")
	s.schedule()
	s.cron.Start()
}

func (s *service) Stop() {
	s.cron.Stop()
}

func (s *service) schedule() {
	// republish the flag set so notification consumers that joined
	// after a flag change converge
	s.cron.AddFunc("*/30 * * * *", func() {
		s.nipsa.Announce(s.cctx)
	})
}
