package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type countingStore struct {
	appts     []domain.Appointment
	members   []domain.TeamMember
	listCalls int
	teamCalls int
	updates   []string
	updateErr error
	listErr   error
}

func (s *countingStore) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	s.listCalls++
	return s.appts, s.listErr
}

func (s *countingStore) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	s.teamCalls++
	return s.members, nil
}

func (s *countingStore) UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error {
	s.updates = append(s.updates, id)
	return s.updateErr
}

func newFeed(t *testing.T, store *countingStore) (*Feed, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFeed(client, store, store, 2*time.Second, logger.NewNop()), mr
}

func sampleStore() *countingStore {
	return &countingStore{
		appts: []domain.Appointment{
			{ID: "a1", ProviderID: "p1", ProviderName: "Anna", ServiceName: "Haircut", Date: "Mon, Sep 15", Time: "9:00 AM - 9:30 AM", ISODate: "2025-09-15"},
		},
		members: []domain.TeamMember{{ID: "p1", Name: "Anna"}},
	}
}

func TestListAppointmentsCached(t *testing.T) {
	store := sampleStore()
	feed, mr := newFeed(t, store)
	ctx := context.Background()

	first, err := feed.ListAppointments(ctx)
	require.NoError(t, err)
	second, err := feed.ListAppointments(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, first, second)
	assert.Equal(t, store.appts, second)
	assert.Equal(t, 2*time.Second, mr.TTL(appointmentsKey))

	mr.FastForward(3 * time.Second)
	_, err = feed.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}

func TestListTeamMembersCached(t *testing.T) {
	store := sampleStore()
	feed, _ := newFeed(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		members, err := feed.ListTeamMembers(ctx)
		require.NoError(t, err)
		assert.Equal(t, store.members, members)
	}
	assert.Equal(t, 1, store.teamCalls)
}

func TestUpdateInvalidates(t *testing.T) {
	store := sampleStore()
	feed, mr := newFeed(t, store)
	ctx := context.Background()

	_, err := feed.ListAppointments(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(appointmentsKey))

	require.NoError(t, feed.UpdateAppointment(ctx, "a1", domain.AppointmentUpdate{Date: "Tue, Sep 16"}))
	assert.Equal(t, []string{"a1"}, store.updates)
	assert.False(t, mr.Exists(appointmentsKey))
}

func TestUpdateRejectedKeepsCache(t *testing.T) {
	store := sampleStore()
	store.updateErr = errors.New("Provider is on vacation")
	feed, mr := newFeed(t, store)
	ctx := context.Background()

	_, err := feed.ListAppointments(ctx)
	require.NoError(t, err)

	err = feed.UpdateAppointment(ctx, "a1", domain.AppointmentUpdate{})
	require.Error(t, err)
	assert.Equal(t, "Provider is on vacation", err.Error())
	assert.True(t, mr.Exists(appointmentsKey))
}

func TestRedisUnavailableFallsBack(t *testing.T) {
	store := sampleStore()
	feed, mr := newFeed(t, store)
	mr.Close()

	appts, err := feed.ListAppointments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.appts, appts)
	assert.Equal(t, 1, store.listCalls)
}

func TestStoreErrorNotCached(t *testing.T) {
	store := sampleStore()
	store.listErr = errors.New("db down")
	feed, mr := newFeed(t, store)

	_, err := feed.ListAppointments(context.Background())
	assert.EqualError(t, err, "db down")
	assert.False(t, mr.Exists(appointmentsKey))
}
