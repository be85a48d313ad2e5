package controllers

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrForbiddenVIN       = errors.New("vehicle not visible to this account")
)
