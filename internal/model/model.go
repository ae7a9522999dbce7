package model

import (
	"time"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusCanceled  Status = "CANCELED"
)

type Book struct {
	ID     int    `json:"-" db:"id"`
	Title  string `json:"title" db:"title"`
	Genre  string `json:"genre" db:"genre"`
	Author string `json:"author" db:"author"`
	Status Status `json:"reservationStatus" db:"reservation_status"`
}

type User struct {
	ID           int    `json:"-" db:"id"`
	Login        string `json:"login" db:"login"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Reservation with a null return date is open; setting the return
// date closes it.
type Reservation struct {
	ReservationUid string     `json:"reservationUid" db:"reservation_uid"`
	UserID         int        `json:"-" db:"user_id"`
	BookID         int        `json:"-" db:"book_id"`
	Login          string     `json:"login" db:"login"`
	BookTitle      string     `json:"bookTitle" db:"book_title"`
	ReserveDate    time.Time  `json:"reserveDate" db:"reserve_date"`
	ReturnDate     *time.Time `json:"returnDate,omitempty" db:"return_date"`
}

type ReserveRequest struct {
	Login    string `json:"login" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Title    string `json:"title" validate:"required"`
}

type ReturnRequest struct {
	Login    string `json:"login" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Genre    string `json:"genre" validate:"required"`
	Author   string `json:"author" validate:"required"`
}

type ListReservationsRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}
