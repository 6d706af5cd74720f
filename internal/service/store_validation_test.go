package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/repository/memory"
)

func TestSubmit_DataTooLongIsValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectExec("INSERT INTO reservations").
		WillReturnError(&mysql.MySQLError{Number: 1406, Message: "Data too long for column 'date' at row 1"})

	svc := NewReservationService(repository.NewReservationRepo(db), nil, nil, nil)
	_, err = svc.Submit(context.Background(), ana(), SubmitInput{Date: strings.Repeat("9", 65), Time: "19:00"})
	wantKind(t, err, KindValidation, "Date is too long")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubmit_OverwideTimeInMemoryStore(t *testing.T) {
	svc := NewReservationService(memory.NewReservationRepo(), nil, nil, nil)
	_, err := svc.Submit(context.Background(), ana(), SubmitInput{Date: "2025-03-01", Time: strings.Repeat("t", 65)})
	wantKind(t, err, KindValidation, "Time is too long")
}

type reservationStoreFunc func(*model.Reservation) error

func (f reservationStoreFunc) Create(_ context.Context, r *model.Reservation) error { return f(r) }
func (reservationStoreFunc) ListAll(context.Context) ([]model.Reservation, error) { return nil, nil }
func (reservationStoreFunc) UpdateStatus(context.Context, uint64, model.ReservationStatus) (model.Reservation, error) {
	return model.Reservation{}, nil
}

func TestSubmit_StoreErrorTranslation(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		kind    Kind
		message string
	}{
		{
			"joined constraints",
			errors.Join(
				&repository.ConstraintError{Column: "date", Reason: repository.ReasonTooLong},
				&repository.ConstraintError{Column: "email", Reason: repository.ReasonRequired},
			),
			KindValidation, "Date is too long, Email is required",
		},
		{
			"wrapped constraint",
			fmt.Errorf("insert: %w", &repository.ConstraintError{Column: "phone", Reason: repository.ReasonInvalid}),
			KindValidation, "Phone number is invalid",
		},
		{"unrelated failure", errors.New("connection reset"), KindInternal, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := reservationStoreFunc(func(*model.Reservation) error { return tc.err })
			_, err := NewReservationService(store, nil, nil, nil).Submit(context.Background(), ana(), SubmitInput{Date: "d", Time: "t"})
			wantKind(t, err, tc.kind, tc.message)
		})
	}
}

// constraintUsers has no users and rejects every insert with err.
type constraintUsers struct{ err error }

func (c constraintUsers) Create(context.Context, *model.User) error { return c.err }
func (constraintUsers) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, repository.ErrNotFound
}
func (constraintUsers) GetByID(context.Context, uint64) (model.User, error) {
	return model.User{}, repository.ErrNotFound
}

func TestRegister_StoreConstraintIsValidation(t *testing.T) {
	ce := &repository.ConstraintError{
		Column: "email",
		Reason: repository.ReasonTooLong,
		Err:    &mysql.MySQLError{Number: 1406, Message: "Data too long for column 'email' at row 1"},
	}
	svc := NewAuthService(constraintUsers{err: ce}, AuthConfig{Secret: testSecret, SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost}, nil, nil)
	_, err := svc.Register(context.Background(), anaSignup())
	wantKind(t, err, KindValidation, "Email is too long")

	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		t.Error("driver error dropped from the chain")
	}
}

func TestRegister_UnknownStoreErrorStaysInternal(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewAuthService(constraintUsers{err: boom}, AuthConfig{Secret: testSecret, SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost}, nil, nil)
	_, err := svc.Register(context.Background(), anaSignup())
	wantKind(t, err, KindInternal, "")
}
