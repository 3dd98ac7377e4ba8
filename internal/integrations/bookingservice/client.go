package bookingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Client клиент для работы с сервисом бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса бронирований
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListAppointments получает ленту записей
func (c *Client) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var dtos []AppointmentDTO
	if err := c.getJSON(ctx, c.baseURL+"/internal/appointments", &dtos); err != nil {
		return nil, err
	}

	appts := make([]domain.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		appts = append(appts, dto.ToDomain())
	}

	return appts, nil
}

// ListTeamMembers получает список мастеров
func (c *Client) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var dtos []TeamMemberDTO
	if err := c.getJSON(ctx, c.baseURL+"/internal/team-members", &dtos); err != nil {
		return nil, err
	}

	members := make([]domain.TeamMember, 0, len(dtos))
	for _, dto := range dtos {
		members = append(members, domain.TeamMember{ID: dto.ID, Name: dto.Name})
	}

	return members, nil
}

// UpdateAppointment переносит запись. Отказ сервиса возвращается как *RejectionError
func (c *Client) UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error {
	body, err := json.Marshal(FromDomainUpdate(update))
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/internal/appointments/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("BookingService unavailable, update of appointment_id=%s failed: %v", id, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.log.Info("Appointment moved in BookingService: appointment_id=%s, date=%s, time=%s", id, update.Date, update.Time)
		return nil
	case http.StatusNotFound:
		return ErrAppointmentNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		reason := readReason(resp.Body)
		c.log.Warn("BookingService rejected appointment_id=%s: %s", id, reason)
		return &RejectionError{StatusCode: resp.StatusCode, Reason: reason}
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("BookingService unavailable: GET %s: %v", endpoint, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readReason достает текст отказа из ErrorResponse, иначе тело целиком
func readReason(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 1<<16))

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}

	if len(raw) == 0 {
		return "update rejected"
	}
	return string(bytes.TrimSpace(raw))
}
