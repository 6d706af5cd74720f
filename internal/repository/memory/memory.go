// Package memory provides in-memory implementations of the user and
// reservation repositories.  They back the service and handler tests and
// can run the server without MySQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// UserRepo stores users in a map keyed by id.  Emails are unique.
type UserRepo struct {
	mu     sync.RWMutex
	nextID uint64
	byID   map[uint64]model.User
	now    func() time.Time
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[uint64]model.User{}, now: time.Now}
}

func (r *UserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := checkWidths(
		column{"first_name", u.FirstName, 30},
		column{"last_name", u.LastName, 30},
		column{"email", u.Email, 255},
		column{"phone", u.Phone, 10},
	); err != nil {
		return err
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = r.now().UTC()
	r.byID[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (r *UserRepo) GetByID(_ context.Context, id uint64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// Delete removes a user.  Nothing in the service deletes users; tests use
// it to simulate a session whose subject no longer resolves.
func (r *UserRepo) Delete(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// ReservationRepo stores reservations in insertion order.
type ReservationRepo struct {
	mu     sync.RWMutex
	nextID uint64
	items  []model.Reservation
	now    func() time.Time
}

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{now: time.Now}
}

func (r *ReservationRepo) Create(_ context.Context, res *model.Reservation) error {
	if err := checkWidths(
		column{"email", res.Email, 255},
		column{"date", res.Date, 64},
		column{"time", res.Time, 64},
	); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	res.ID = r.nextID
	res.CreatedAt = r.now().UTC()
	r.items = append(r.items, *res)
	return nil
}

// ListAll returns a copy of every reservation, newest first.
func (r *ReservationRepo) ListAll(_ context.Context) ([]model.Reservation, error) {
	r.mu.RLock()
	out := make([]model.Reservation, len(r.items))
	copy(out, r.items)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ReservationRepo) UpdateStatus(_ context.Context, id uint64, status model.ReservationStatus) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return r.items[i], nil
		}
	}
	return model.Reservation{}, repository.ErrNotFound
}

// column is one value checked against the VARCHAR width of the MySQL schema.
type column struct {
	name  string
	value string
	width int
}

func checkWidths(cols ...column) error {
	for _, c := range cols {
		if utf8.RuneCountInString(c.value) > c.width {
			return &repository.ConstraintError{Column: c.name, Reason: repository.ReasonTooLong}
		}
	}
	return nil
}
