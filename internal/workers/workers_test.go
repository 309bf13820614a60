package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gym_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler()
	err := s.Add("every day", &countingJob{})
	assert.Error(t, err)
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler()
	job := &countingJob{err: errors.New("boom")}

	require.NoError(t, s.Add("0 8 * * *", job))
	s.Start()
	s.RunNow(job)

	assert.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	// после Stop задачи не выполняются
	s.runJob(job)
	assert.Equal(t, int32(1), job.runs.Load())
}

type fakeSubscriptions struct {
	services.SubscriptionService
	calls int
}

func (f *fakeSubscriptions) ExpireOverdue(db *gorm.DB) (int64, error) {
	f.calls++
	return 2, nil
}

type fakeNotifications struct {
	services.NotificationService
	err error
}

func (f *fakeNotifications) SendExpiringReports(db *gorm.DB) (int, error) {
	return 0, f.err
}

func lazyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test"}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestWorkers(t *testing.T) {
	db := lazyDB(t)

	subs := &fakeSubscriptions{}
	sw := NewSubscriptionWorker(db, subs)
	assert.Equal(t, "expire-subscriptions", sw.Name())
	require.NoError(t, sw.Run(context.Background()))
	assert.Equal(t, 1, subs.calls)

	rw := NewReportWorker(db, &fakeNotifications{err: errors.New("smtp down")})
	assert.Equal(t, "expiring-report", rw.Name())
	assert.EqualError(t, rw.Run(context.Background()), "smtp down")
}
