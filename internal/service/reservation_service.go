package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservation/internal/metrics"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// ReservationStore is the reservation store used by ReservationService.
// UpdateStatus returns repository.ErrNotFound for unknown ids.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	ListAll(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint64, status model.ReservationStatus) (model.Reservation, error)
}

// EventPublisher sends reservation events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// SubmitInput is the body of a reservation request.  Any other field a
// client sends, status included, is ignored.
type SubmitInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ReservationService implements the reservation workflow.  It assumes the
// caller already passed the access-control gate: Submit needs a resolved
// user, ListAll and SetStatus need an admin.
type ReservationService struct {
	store   ReservationStore
	events  EventPublisher
	metrics metrics.Recorder
	log     *zap.Logger
	now     func() time.Time
}

func NewReservationService(store ReservationStore, events EventPublisher, rec metrics.Recorder, log *zap.Logger) *ReservationService {
	if store == nil {
		panic("nil reservation store passed to NewReservationService")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReservationService{store: store, events: events, metrics: rec, log: log, now: time.Now}
}

// Submit creates a pending reservation for u.  The requester fields are
// copied from u; no overlap or capacity check is made.
func (s *ReservationService) Submit(ctx context.Context, u model.User, in SubmitInput) (model.Reservation, error) {
	date := strings.TrimSpace(in.Date)
	slot := strings.TrimSpace(in.Time)
	if date == "" || slot == "" {
		return model.Reservation{}, ErrValidation(MsgMissingSlot)
	}
	res := model.Reservation{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Date:      date,
		Time:      slot,
		Status:    model.StatusPending,
		UserID:    u.ID,
	}
	if err := s.store.Create(ctx, &res); err != nil {
		if verr, ok := storeValidation(err); ok {
			return model.Reservation{}, verr
		}
		return model.Reservation{}, ErrInternal("create reservation", err)
	}
	s.metrics.RecordReservationSubmitted()
	s.publish(ctx, queue.EventSubmitted, res)
	return res, nil
}

// ListAll returns every reservation, newest first.
func (s *ReservationService) ListAll(ctx context.Context) ([]model.Reservation, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal("list reservations", err)
	}
	return list, nil
}

// SetStatus moves reservation id to the status named by raw.  The update
// is unconditional: repeating or reversing a decision succeeds and the
// last write wins.
func (s *ReservationService) SetStatus(ctx context.Context, id uint64, raw string) (model.Reservation, error) {
	status, ok := model.ParseReservationStatus(raw)
	if !ok {
		return model.Reservation{}, ErrValidation(MsgInvalidStatus)
	}
	res, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Reservation{}, ErrNotFound(MsgReservationGone)
		}
		return model.Reservation{}, ErrInternal("update reservation status", err)
	}
	s.metrics.RecordStatusChange(string(status))
	s.publish(ctx, queue.EventStatusChanged, res)
	return res, nil
}

// publish reports res to the event publisher.  Failures are logged and do
// not fail the request; the reservation is already stored.
func (s *ReservationService) publish(ctx context.Context, typ string, res model.Reservation) {
	ev := queue.ReservationEvent{
		Type:          typ,
		ReservationID: res.ID,
		UserID:        res.UserID,
		Email:         res.Email,
		Date:          res.Date,
		Time:          res.Time,
		Status:        string(res.Status),
		OccurredAt:    s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish reservation event failed",
			zap.String("type", typ), zap.Uint64("reservation_id", res.ID), zap.Error(err))
	}
}
