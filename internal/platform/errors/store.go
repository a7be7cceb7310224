package errors

// Backend-specific classification for Postgres, MongoDB and context failures

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

// SQLSTATE codes the search store cares about
const (
	pgErrInvalidRegex          = "2201B"
	pgErrInvalidTextRepr       = "22P02"
	pgErrSerializationFailure  = "40001"
	pgErrDeadlockDetected      = "40P01"
	pgErrQueryCanceled         = "57014"
	pgErrCannotConnectNow      = "57P03"
	pgErrAdminShutdown         = "57P01"
	pgErrTooManyConnections    = "53300"
	pgErrUndefinedTable        = "42P01"
	pgErrInsufficientResources = "53000"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsTimeout reports whether err is a deadline or statement timeout from any backend
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return true
	}
	return IsSQLState(err, pgErrQueryCanceled)
}

// StoreErrorCode classifies a backend failure
// ok is false when err is nil
func StoreErrorCode(err error) (ErrorCode, bool) {
	switch {
	case err == nil:
		return ErrorCodeUnknown, false
	case IsTimeout(err):
		return ErrorCodeTimeout, true
	case mongo.IsNetworkError(err):
		return ErrorCodeUnavailable, true
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrCannotConnectNow, pgErrAdminShutdown, pgErrTooManyConnections, pgErrInsufficientResources:
			return ErrorCodeUnavailable, true
		case pgErrInvalidRegex, pgErrInvalidTextRepr:
			return ErrorCodeInvalidArgument, true
		}
	}
	return ErrorCodeDB, true
}

// IsRetryable reports whether a store error is transient
// caller cancellations are never retried
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if mongo.IsNetworkError(err) {
		return true
	}
	var se mongo.ServerError
	if stderrs.As(err, &se) && se.HasErrorLabel("RetryableReadError") {
		return true
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrCannotConnectNow, pgErrTooManyConnections:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "connection reset by peer") ||
		strings.Contains(s, "terminating connection due to administrator command")
}

// IsMissingRelation reports whether a Postgres query hit an absent table
func IsMissingRelation(err error) bool { return IsSQLState(err, pgErrUndefinedTable) }
