package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

var reservationRowColumns = []string{"id", "first_name", "last_name", "email", "phone", "date", "time", "status", "user_id", "created_at"}

func TestReservationRepo_Create(t *testing.T) {
	mock, done := newMock(t)
	defer done()

	created := time.Date(2025, 2, 20, 9, 30, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs("Ana", "Smith", "ana@x.com", "1234567890", "2025-03-01", "19:00", "pending", uint64(3)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + reservationColumns + " FROM reservations WHERE id = ?")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns).
			AddRow(11, "Ana", "Smith", "ana@x.com", "1234567890", "2025-03-01", "19:00", "pending", 3, created))

	res := &model.Reservation{
		FirstName: "Ana", LastName: "Smith", Email: "ana@x.com", Phone: "1234567890",
		Date: "2025-03-01", Time: "19:00", Status: model.StatusPending, UserID: 3,
	}
	if err := reservationRepoUnderTest.Create(context.Background(), res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID != 11 || res.Status != model.StatusPending || !res.CreatedAt.Equal(created) {
		t.Errorf("reservation = %+v", res)
	}
}

func TestReservationRepo_ListAll_NewestFirst(t *testing.T) {
	mock, done := newMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns).
			AddRow(2, "Bob", "Jones", "bob@x.com", "0987654321", "2025-03-02", "20:00", "accepted", 4, now).
			AddRow(1, "Ana", "Smith", "ana@x.com", "1234567890", "2025-03-01", "19:00", "pending", 3, now.Add(-time.Hour)))

	list, err := reservationRepoUnderTest.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 || list[1].ID != 1 {
		t.Fatalf("list = %+v, want ids [2 1]", list)
	}
	if list[0].Status != model.StatusAccepted {
		t.Errorf("status = %q, want accepted", list[0].Status)
	}
}

func TestReservationRepo_ListAll_Empty(t *testing.T) {
	mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT .* FROM reservations").
		WillReturnRows(sqlmock.NewRows(reservationRowColumns))

	list, err := reservationRepoUnderTest.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("list = %#v, want empty non-nil slice", list)
	}
}

func TestReservationRepo_UpdateStatus(t *testing.T) {
	mock, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = ? WHERE id = ?")).
		WithArgs("accepted", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM reservations WHERE id = ").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns).
			AddRow(5, "Ana", "Smith", "ana@x.com", "1234567890", "2025-03-01", "19:00", "accepted", 3, time.Now()))
	mock.ExpectCommit()

	res, err := reservationRepoUnderTest.UpdateStatus(context.Background(), 5, model.StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if res.Status != model.StatusAccepted {
		t.Errorf("status = %q, want accepted", res.Status)
	}
}

func TestReservationRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs("declined", uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM reservations WHERE id = ").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns))
	mock.ExpectRollback()

	if _, err := reservationRepoUnderTest.UpdateStatus(context.Background(), 404, model.StatusDeclined); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
