package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	if !IsUniqueViolation(dup, "") {
		t.Error("any unique violation should match without a constraint filter")
	}
	if !IsUniqueViolation(dup, "idx_users_email") {
		t.Error("expected match on the violated constraint")
	}
	if IsUniqueViolation(dup, "idx_roles_name") {
		t.Error("must not match a different constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("foreign key violations are not unique violations")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email"), "") {
		t.Error("sqlite style message should match")
	}
	if !IsUniqueViolation(fmt.Errorf("insert: %w", errors.New(`duplicate key value violates unique constraint "idx_carts_user"`)), "idx_carts_user") {
		t.Error("wrapped message with constraint should match")
	}
	if IsUniqueViolation(nil, "") {
		t.Error("nil error never matches")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Error("unrelated errors must not match")
	}
}
