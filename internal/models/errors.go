package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection is returned when there is nothing to put in a draft or a document.
	ErrEmptySelection = errors.New("no photos selected")

	ErrUnknownCategory = errors.New("unknown category")
	ErrSlotOutOfRange  = errors.New("photo slot out of range")
	ErrSlotEmpty       = errors.New("photo slot is empty")
	ErrEntryOutOfRange = errors.New("draft entry out of range")

	// ErrResourceUnavailable marks a missing optional resource such as a font file.
	// Callers recover from it locally.
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// DecodeError reports an uploaded image that could not be decoded
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
