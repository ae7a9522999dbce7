package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/internal/model"
	"github.com/libreserve/reservation-service/internal/repository"
	"github.com/libreserve/reservation-service/pkg/hash"
	"github.com/libreserve/reservation-service/pkg/kafka"
)

// Service is the reservation workflow. It owns the precondition
// checks and status transitions; lookups and the transactional writes
// live in the repository capabilities.
type Service struct {
	log     *zap.Logger
	books   repository.BookCatalog
	users   repository.UserDirectory
	ledger  repository.ReservationLedger
	checker hash.Checker
	queue   Enqueuer
}

func NewService(
	books repository.BookCatalog,
	users repository.UserDirectory,
	ledger repository.ReservationLedger,
	checker hash.Checker,
	queue Enqueuer,
	log *zap.Logger,
) *Service {
	return &Service{
		log:     log,
		books:   books,
		users:   users,
		ledger:  ledger,
		checker: checker,
		queue:   queue,
	}
}

func (s *Service) GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	rsv, err := s.ledger.GetReservation(ctx, reservationUid)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "reservation")
	}
	return rsv, nil
}

// MostReservedBooks orders by reservation frequency; the ordering is
// the ledger's aggregate, no extra tie-breaking here.
func (s *Service) MostReservedBooks(ctx context.Context) ([]model.Book, error) {
	return s.ledger.MostReservedBooks(ctx)
}

func (s *Service) ListReservationsForUser(ctx context.Context, login, password string) ([]model.Reservation, error) {
	if login == "" {
		return nil, errs.ErrLoginRequired
	}
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, errors.Wrap(err, "login, check the field")
	}
	if err := s.checker.Verify(password, user.PasswordHash); err != nil {
		return nil, err
	}

	items, err := s.ledger.GetReservationsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.ErrNoReservations
	}
	return items, nil
}

func (s *Service) Reserve(ctx context.Context, req model.ReserveRequest) (model.Reservation, error) {
	byLogin, err := s.users.GetUserByLogin(ctx, req.Login)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "login, check the field")
	}
	byEmail, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "email, check the field")
	}
	if byLogin.ID != byEmail.ID {
		return model.Reservation{}, errs.ErrUserMismatch
	}
	if err := s.checker.Verify(req.Password, byLogin.PasswordHash); err != nil {
		return model.Reservation{}, err
	}

	book, err := s.books.GetBookByTitle(ctx, req.Title)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "book")
	}
	if book.Status == model.StatusReserved || book.Status == model.StatusCanceled {
		return model.Reservation{}, errs.ErrBookNotAvailable
	}

	rsv, err := s.ledger.CreateReservation(ctx, book, byLogin)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(kafka.EventReserved, rsv)
	return rsv, nil
}

func (s *Service) ReturnBook(ctx context.Context, req model.ReturnRequest) (model.Reservation, error) {
	book, err := s.books.GetBook(ctx, req.Title, req.Genre, req.Author)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "book")
	}
	user, err := s.users.GetUserByLoginAndEmail(ctx, req.Login, req.Email)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "user, check the fields")
	}
	rsv, err := s.ledger.GetOpenReservation(ctx, book.ID, user.ID)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "reservation, check the user and book")
	}
	if err := s.checker.Verify(req.Password, user.PasswordHash); err != nil {
		return model.Reservation{}, err
	}
	if book.Status != model.StatusReserved {
		return model.Reservation{}, errs.ErrBookNotReserved
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	rsv.ReturnDate = &today
	closed, err := s.ledger.CloseReservation(ctx, rsv)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(kafka.EventReturned, closed)
	return closed, nil
}

// publish is best-effort: a broker hiccup must not fail the workflow.
func (s *Service) publish(eventType string, rsv model.Reservation) {
	if s.queue == nil {
		return
	}
	event := kafka.EventReservation{
		Type:           eventType,
		ReservationUid: rsv.ReservationUid,
		Login:          rsv.Login,
		BookTitle:      rsv.BookTitle,
		Date:           time.Now().UTC(),
	}
	if err := s.queue.Enqueue(kafka.ReservationTopic, event); err != nil {
		s.log.Warn("enqueue reservation event", zap.Error(err))
	}
}
