package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  Only the
// three values below are valid; ParseReservationStatus rejects anything
// else.
type ReservationStatus string

const (
    StatusPending  ReservationStatus = "pending"
    StatusAccepted ReservationStatus = "accepted"
    StatusDeclined ReservationStatus = "declined"
)

// ParseReservationStatus converts raw input into a ReservationStatus.  The
// comparison is exact; "Accepted" is not accepted.
func ParseReservationStatus(raw string) (ReservationStatus, bool) {
    switch s := ReservationStatus(raw); s {
    case StatusPending, StatusAccepted, StatusDeclined:
        return s, true
    }
    return "", false
}

// Reservation records one table booking request.  The requester fields
// are a snapshot of the user taken when the reservation was submitted;
// they are not joined against the users table afterwards.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – requester first name at submission time.
//  LastName  – requester last name at submission time.
//  Email     – requester email at submission time.
//  Phone     – requester phone at submission time.
//  Date      – requested date, stored as given.
//  Time      – requested time, stored as given.
//  Status    – pending, accepted or declined.
//  UserID    – user who submitted the reservation.
//  CreatedAt – creation timestamp.
type Reservation struct {
    ID        uint64            `json:"id"`        // reservations.id
    FirstName string            `json:"firstName"` // reservations.first_name
    LastName  string            `json:"lastName"`  // reservations.last_name
    Email     string            `json:"email"`     // reservations.email
    Phone     string            `json:"phone"`     // reservations.phone
    Date      string            `json:"date"`      // reservations.date
    Time      string            `json:"time"`      // reservations.time
    Status    ReservationStatus `json:"status"`    // reservations.status
    UserID    uint64            `json:"user"`      // reservations.user_id
    CreatedAt time.Time         `json:"createdAt"` // reservations.created_at
}
