package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const (
	appointmentsKey = "calendar:appointments"
	teamMembersKey  = "calendar:team_members"
)

// Feed кэширует ленту записей и список мастеров в Redis.
// Перенос записи идет в хранилище напрямую и сбрасывает ленту.
// При недоступности Redis чтение идет в хранилище.
type Feed struct {
	redis        *redis.Client
	appointments AppointmentStore
	roster       RosterStore
	ttl          time.Duration
	logger       Logger
}

// NewFeed создает кэширующую обертку над хранилищем
func NewFeed(client *redis.Client, appointments AppointmentStore, roster RosterStore, ttl time.Duration, logger Logger) *Feed {
	return &Feed{
		redis:        client,
		appointments: appointments,
		roster:       roster,
		ttl:          ttl,
		logger:       logger,
	}
}

// ListAppointments возвращает ленту записей из кэша или хранилища
func (f *Feed) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var cached []domain.Appointment
	if f.load(ctx, appointmentsKey, &cached) {
		return cached, nil
	}

	appts, err := f.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}

	f.store(ctx, appointmentsKey, appts)
	return appts, nil
}

// ListTeamMembers возвращает список мастеров из кэша или хранилища
func (f *Feed) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var cached []domain.TeamMember
	if f.load(ctx, teamMembersKey, &cached) {
		return cached, nil
	}

	members, err := f.roster.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	f.store(ctx, teamMembersKey, members)
	return members, nil
}

// UpdateAppointment переносит запись и сбрасывает ленту.
// Ошибка хранилища возвращается без изменений.
func (f *Feed) UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error {
	if err := f.appointments.UpdateAppointment(ctx, id, update); err != nil {
		return err
	}

	f.Invalidate(ctx)
	return nil
}

// Invalidate удаляет кэшированную ленту записей
func (f *Feed) Invalidate(ctx context.Context) {
	if err := f.redis.Del(ctx, appointmentsKey).Err(); err != nil {
		f.logger.Warn("FeedCache: failed to invalidate %s: %v", appointmentsKey, err)
	}
}

func (f *Feed) load(ctx context.Context, key string, out interface{}) bool {
	data, err := f.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			f.logger.Warn("FeedCache: failed to read %s, falling back to store: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		f.logger.Warn("FeedCache: failed to decode %s: %v", key, err)
		return false
	}

	return true
}

func (f *Feed) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		f.logger.Error("FeedCache: failed to encode %s: %v", key, err)
		return
	}

	if err := f.redis.Set(ctx, key, data, f.ttl).Err(); err != nil {
		f.logger.Warn("FeedCache: failed to write %s: %v", key, err)
	}
}
