package models

import (
	"fmt"
)

// DecodeError reports that a response body could not be deserialized into
// the wire shape for a resource. It covers malformed JSON and wrong field
// types; semantic failures are reported with the validation error types
// below instead.
type DecodeError struct {
	Resource string // resource being decoded, e.g. "products"
	Err      error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// UnknownCurrencyError reports a product currency token that does not exist
// in the reference set. Token is the offending currency code exactly as it
// appeared in the wire id.
type UnknownCurrencyError struct {
	Token string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Token)
}

// MalformedProductIDError reports a product id that does not split into
// exactly two non-empty tokens on "-". It is distinct from
// UnknownCurrencyError: a malformed id never reaches the currency lookup.
type MalformedProductIDError struct {
	ID string
}

func (e *MalformedProductIDError) Error() string {
	return fmt.Sprintf("malformed product id %q: want exactly one %q separating two non-empty currency codes", e.ID, "-")
}

// BadDecimalError reports a field whose value could not be parsed as a
// decimal number.
type BadDecimalError struct {
	Field string
	Value string
	Err   error
}

func (e *BadDecimalError) Error() string {
	return fmt.Sprintf("invalid decimal for field %s: %q", e.Field, e.Value)
}

func (e *BadDecimalError) Unwrap() error { return e.Err }

// BadUUIDError reports a level-3 order id that is not a valid UUID. Value
// carries the offending string verbatim.
type BadUUIDError struct {
	Value string
	Err   error
}

func (e *BadUUIDError) Error() string {
	return fmt.Sprintf("invalid order id %q: not a UUID", e.Value)
}

func (e *BadUUIDError) Unwrap() error { return e.Err }

// BadTimestampError reports a time field that is not a valid RFC 3339
// timestamp. Value carries the original string verbatim so a caller can
// diagnose API contract drift without re-fetching.
type BadTimestampError struct {
	Value string
	Err   error
}

func (e *BadTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q", e.Value)
}

func (e *BadTimestampError) Unwrap() error { return e.Err }

// UnknownSideError reports a trade side other than "buy" or "sell".
type UnknownSideError struct {
	Value string
}

func (e *UnknownSideError) Error() string {
	return fmt.Sprintf("unknown trade side %q", e.Value)
}

// BadBookEntryError reports an order book entry that is not a three-element
// array of price, size and order count or id.
type BadBookEntryError struct {
	Length int
}

func (e *BadBookEntryError) Error() string {
	return fmt.Sprintf("order book entry has %d elements, want 3", e.Length)
}

// BadOrderCountError reports a level 1/2 order book entry whose third
// element is not an integer order count.
type BadOrderCountError struct {
	Value string
}

func (e *BadOrderCountError) Error() string {
	return fmt.Sprintf("invalid order count %q", e.Value)
}
