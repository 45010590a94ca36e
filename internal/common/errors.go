package common

import (
	"errors"
)

var (
	ErrEmptyVendorName    = errors.New("vendor name is empty")
	ErrVendorNotFound     = errors.New("no matches found for vendor")
	ErrProductNotMatched  = errors.New("no catalog item matches product")
	ErrInvalidLineItems   = errors.New("invalid line items")
	ErrInvalidDate        = errors.New("invalid format date")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
	ErrMissingRemoteID    = errors.New("response does not contain remote id")
	ErrUnableGetProcessor = errors.New("unable to get processor")
	ErrInvalidEnvelope    = errors.New("invalid record envelope")
	ErrInvalidRecord      = errors.New("invalid record")
)
