package handler

import (
	"context"

	"github.com/libreserve/reservation-service/internal/model"
	"github.com/libreserve/reservation-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	MostReservedBooks(ctx context.Context) ([]model.Book, error)
	ListReservationsForUser(ctx context.Context, login, password string) ([]model.Reservation, error)
	Reserve(ctx context.Context, req model.ReserveRequest) (model.Reservation, error)
	ReturnBook(ctx context.Context, req model.ReturnRequest) (model.Reservation, error)
}

var _ ReservationService = (*service.Service)(nil)
