package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

// ErrRoomNotFound reports that the room row the booking points at does not
// exist, discovered while trying to lock it.
var ErrRoomNotFound = errors.New("room not found")

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CreateIfAvailable(ctx context.Context, booking model.Booking) (created bool, err error)
	CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func overlapQuery(rebind func(string) string, roomID string, checkIn, checkOut time.Time) (string, []any, error) {
	raw := fmt.Sprintf(
		"SELECT COUNT(%s) FROM %s WHERE %s = ? AND %s IN (?) AND %s < ? AND %s > ?",
		model.FieldID, model.TableName, model.FieldRoomID, model.FieldStatus,
		model.FieldCheckInDate, model.FieldCheckOutDate,
	)

	query, args, err := sqlx.In(raw, roomID, model.ActiveStatuses(), checkOut, checkIn)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand overlap query: %w", err)
	}

	return rebind(query), args, nil
}

// CountOverlapping reports how many active bookings intersect the half-open
// range [checkIn, checkOut) for the given room. Read-side only; the write path
// re-checks under a row lock in CreateIfAvailable.
func (repo *repositoryImpl) CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	query, args, err := overlapQuery(repo.db.Read.Rebind, roomID, checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &count, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

// CreateIfAvailable inserts the booking only when no active booking overlaps
// its date range. The overlap check and the insert happen in one transaction
// that locks the room row, so two concurrent requests for the same room
// serialize and at most one of them wins.
func (repo *repositoryImpl) CreateIfAvailable(ctx context.Context, booking model.Booking) (created bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateIfAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil || !created {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	lockQuery := tx.Rebind("SELECT id FROM rooms WHERE id = ? FOR UPDATE")
	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	var lockedID string
	if err = tx.GetContext(ctx, &lockedID, lockQuery, booking.RoomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrRoomNotFound
		}

		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to lock room row: %w", err)
	}

	query, args, err := overlapQuery(tx.Rebind, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, err
	}

	var overlapping int
	if err = tx.GetContext(ctx, &overlapping, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	if overlapping > 0 {
		return false, nil
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return false, err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to commit booking: %w", err)
	}

	return true, nil
}
