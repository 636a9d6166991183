package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsTransient(t *testing.T) {
	transient := []error{
		ErrMongoConflict,
		ErrMongoNetwork,
		ErrMongoTimeout,
		ErrTransaction,
		fmt.Errorf("sweep failed: %w", ErrMongoConflict),
	}
	for _, err := range transient {
		if !IsTransient(err) {
			t.Errorf("IsTransient(%v) = false, want true", err)
		}
	}

	permanent := []error{
		ErrNotFound,
		ErrMongoQuery,
		ErrMongoAuth,
		ErrEscalationAlreadyUsed,
		errors.New("plain error"),
		nil,
	}
	for _, err := range permanent {
		if IsTransient(err) {
			t.Errorf("IsTransient(%v) = true, want false", err)
		}
	}
}

func TestConvertMongoError(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("ConvertMongoError(nil) = %v, want nil", got)
	}
	if got := ConvertMongoError(mongo.ErrNoDocuments); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNoDocuments mapped to %v, want ErrNotFound", got)
	}
	if got := ConvertMongoError(ErrNotFound); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNotFound must pass through, got %v", got)
	}

	conflict := mongo.CommandError{Code: 112, Labels: []string{"TransientTransactionError"}}
	if got := ConvertMongoError(conflict); !IsTransient(got) {
		t.Errorf("transaction conflict mapped to %v, want a transient error", got)
	}
}
