package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

const (
	appointmentsTable = "appointments"
	teamMembersTable  = "team_members"
)

var appointmentColumns = []string{
	"id",
	"provider_id",
	"provider_name",
	"service_name",
	"date",
	"time",
	"iso_date",
}

// Repository репозиторий записей. Календарь только читает записи
// и переписывает поля date, time, provider_id.
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// ListAppointments возвращает все записи, упорядоченные по id
func (r *Repository) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAppointments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAppointments - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var appts []domain.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAppointments - scan row: %v", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAppointments - rows error: %v", ErrExecQuery, err)
	}

	return appts, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return &appt, nil
}

// UpdateAppointment переносит запись: дата, время и мастер.
// Имя мастера денормализуется из team_members в той же транзакции.
func (r *Repository) UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := txmanager.GetExecutor(txCtx, r.db)

		// 1. Имя мастера
		providerName, err := r.providerName(txCtx, executor, update.ProviderID)
		if err != nil {
			return err
		}

		// 2. Обновление записи
		query, args, err := psqlbuilder.Update(appointmentsTable).
			Set("date", update.Date).
			Set("time", update.Time).
			Set("iso_date", sql.NullString{String: update.DateISO, Valid: update.DateISO != ""}).
			Set("provider_id", update.ProviderID).
			Set("provider_name", providerName).
			Set("updated_at", update.UpdatedAt).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdateAppointment - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(txCtx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: UpdateAppointment - execute update: %v", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: UpdateAppointment - rows affected: %v", ErrExecQuery, err)
		}
		if affected == 0 {
			return ErrAppointmentNotFound
		}

		return nil
	})
}

func (r *Repository) providerName(ctx context.Context, executor DBExecutor, providerID string) (string, error) {
	query, args, err := psqlbuilder.Select("name").
		From(teamMembersTable).
		Where(squirrel.Eq{"id": providerID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: providerName - build select query: %v", ErrBuildQuery, err)
	}

	var name string
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrProviderNotFound, providerID)
		}
		return "", fmt.Errorf("%w: providerName - scan row: %v", ErrScanRow, err)
	}

	return name, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(s scanner) (domain.Appointment, error) {
	var appt domain.Appointment
	var isoDate sql.NullString

	err := s.Scan(
		&appt.ID,
		&appt.ProviderID,
		&appt.ProviderName,
		&appt.ServiceName,
		&appt.Date,
		&appt.Time,
		&isoDate,
	)
	if err != nil {
		return domain.Appointment{}, err
	}

	appt.ISODate = isoDate.String
	return appt, nil
}
