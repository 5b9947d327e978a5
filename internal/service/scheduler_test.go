package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licencewatch/internal/config"
	"licencewatch/internal/service"
)

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	s := service.NewScheduler(newFixture().svc, config.ScheduleConfig{CronSpec: "not a cron spec"})
	assert.Error(t, s.Start())
}

func TestScheduler_StartAndStop(t *testing.T) {
	s := service.NewScheduler(newFixture().svc, config.ScheduleConfig{CronSpec: "0 7 * * 1-5"})
	require.NoError(t, s.Start())

	ctx := s.Stop()
	<-ctx.Done()
}
