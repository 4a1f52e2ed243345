package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryableSQLState(t *testing.T) {
	retryable := []string{
		"40001", "40P01", // serialization, deadlock
		"08000", "08003", "08006", "08001", "08004", "08007", "08P01", // connection
		"53000", "53100", "53200", "53300", "53400", // resources
		"57P03", // cannot connect now
	}
	for _, code := range retryable {
		assert.True(t, retryableSQLState(code), "SQLSTATE %s", code)
	}

	notRetryable := []string{
		"23505", // unique_violation
		"23503", // foreign_key_violation
		"42601", // syntax_error
		"42501", // insufficient_privilege
		"P0002", // no_data_found
		"",
	}
	for _, code := range notRetryable {
		assert.False(t, retryableSQLState(code), "SQLSTATE %s", code)
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.False(t, isRetryableError(context.DeadlineExceeded))
	assert.False(t, isRetryableError(context.Canceled))
	assert.False(t, isRetryableError(sql.ErrNoRows))

	assert.True(t, isRetryableError(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))

	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("pq: sorry, too many clients already")))
	assert.False(t, isRetryableError(errors.New("some application error")))
}

func TestRetryWithBackoff(t *testing.T) {
	fastConfig := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		EnableRetry:  true,
	}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), fastConfig, func() error {
			attempts++
			if attempts < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("permanent errors fail fast", func(t *testing.T) {
		attempts := 0
		permanent := &pgconn.PgError{Code: "23505"}
		err := RetryWithBackoff(context.Background(), fastConfig, func() error {
			attempts++
			return permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		transient := &pgconn.PgError{Code: "40P01"}
		err := RetryWithBackoff(context.Background(), fastConfig, func() error {
			attempts++
			return transient
		})
		assert.ErrorIs(t, err, transient)
		assert.Equal(t, fastConfig.MaxAttempts, attempts)
	})

	t.Run("disabled retry runs once", func(t *testing.T) {
		config := fastConfig
		config.EnableRetry = false

		attempts := 0
		_ = RetryWithBackoff(context.Background(), config, func() error {
			attempts++
			return &pgconn.PgError{Code: "40001"}
		})
		assert.Equal(t, 1, attempts)
	})
}
