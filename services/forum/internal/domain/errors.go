package domain

import (
	"errors"
	"fmt"
)

// Messages callers and clients match on. Keep them verbatim.
const (
	MsgThreadNotFound  = "Thread tidak ditemukan"
	MsgCommentNotFound = "Komentar tidak ditemukan pada thread ini"
	MsgReplyNotFound   = "Balasan tidak ditemukan"
	MsgNotCommentOwner = "Anda bukan pemilik komentar ini"
	MsgNotReplyOwner   = "Anda bukan pemilik balasan ini"

	MsgUsernameTaken      = "username tidak tersedia"
	MsgUsernameForbidden  = "tidak dapat membuat user baru karena username mengandung karakter terlarang"
	MsgUsernameTooLong    = "tidak dapat membuat user baru karena karakter username melebihi batas limit"
	MsgPasswordTooLong    = "tidak dapat membuat user baru karena karakter password melebihi batas limit"
	MsgInvalidCredentials = "kredensial yang Anda masukkan salah"
	MsgLoginMissing       = "harus mengirimkan username dan password"
	MsgConcurrentUpdate   = "permintaan bertabrakan dengan permintaan lain, silakan coba lagi"
)

// MissingPropertyMessage is the validation message for a payload lacking a
// required field. kind is "thread", "comment", "reply" or "user".
func MissingPropertyMessage(kind string) string {
	return fmt.Sprintf("tidak dapat membuat %s baru karena properti yang dibutuhkan tidak ada", kind)
}

// WrongTypeMessage is the validation message for a payload whose fields have
// the wrong JSON types.
func WrongTypeMessage(kind string) string {
	return fmt.Sprintf("tidak dapat membuat %s baru karena tipe data tidak sesuai", kind)
}

// ValidationError means the payload is missing fields or has the wrong shape.
type ValidationError struct {
	Message string
	// Fields maps a payload field to the rule it failed.
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a thread, comment or reply is absent, soft-deleted, or
// not a child of the given parent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthorizationError means the caller does not own the entity. It never
// names the real owner.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// AuthenticationError means login credentials did not match.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// Kind classifies err for metrics and logs: "validation", "not_found",
// "forbidden", "unauthenticated" or "internal". A nil error is "ok".
func Kind(err error) string {
	var (
		verr  *ValidationError
		nf    *NotFoundError
		forb  *AuthorizationError
		authn *AuthenticationError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "validation"
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &forb):
		return "forbidden"
	case errors.As(err, &authn):
		return "unauthenticated"
	default:
		return "internal"
	}
}
