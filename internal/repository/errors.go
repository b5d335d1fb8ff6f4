package repository

import "errors"

// ErrInsufficientStock is returned by a registry debit that would drive the
// item's stock below zero. The item row is left untouched.
var ErrInsufficientStock = errors.New("insufficient stock")
