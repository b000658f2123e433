package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrUnknownPlan       = errors.New("unknown plan")
	ErrUnknownRegion     = errors.New("unknown region")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrPaymentNotFound   = errors.New("payment not found or already processed")
	ErrProofWindowClosed = errors.New("proof upload window closed")
	ErrProvisioning      = errors.New("provisioning failed")
	ErrConflict          = errors.New("another bot instance holds this credential")
)
