package domain

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid payment adapter config")
	ErrMissingCustomer = errors.New("remote customer not established")
)

// AdapterConfig carries provider credentials into adapter factories.
type AdapterConfig struct {
	Provider string
	APIKey   string
}
