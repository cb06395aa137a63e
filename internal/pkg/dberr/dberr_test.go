package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_booking_member_class_slot"}

	assert.True(t, IsUniqueViolation(pgDup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgDup)))
	assert.True(t, IsUniqueViolation(pgDup, "idx_booking_member_class_slot"))
	assert.False(t, IsUniqueViolation(pgDup, "idx_other"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: bookings.member_id (2067)")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("boom")))
}
