package services

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSchemaMissing marks backend failures caused by collections that
	// have not been provisioned yet. Callers choose the fallback policy.
	ErrSchemaMissing = errors.New("backend schema missing")

	// ErrNotFound marks lookups for records that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both unknown emails and bad passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken rejects signups for an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// namespaceNotFound is the MongoDB server code for operations against a
// collection that does not exist.
const namespaceNotFound = 26

// classify maps raw driver errors onto the service error taxonomy so
// callers can test with errors.Is instead of matching message strings.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == namespaceNotFound || cmdErr.Name == "NamespaceNotFound" {
			return fmt.Errorf("%w: %s", ErrSchemaMissing, cmdErr.Message)
		}
	}
	if strings.Contains(err.Error(), "ns does not exist") {
		return fmt.Errorf("%w: %v", ErrSchemaMissing, err)
	}
	return err
}
