package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindsAreDistinguishable(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", &NotFoundError{Message: MsgThreadNotFound})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("expected NotFoundError through wrapping")
	}
	if nf.Message != MsgThreadNotFound {
		t.Fatalf("unexpected message %q", nf.Message)
	}

	var ae *AuthorizationError
	if errors.As(err, &ae) {
		t.Fatal("NotFoundError must not match AuthorizationError")
	}
}

func TestValidationMessages(t *testing.T) {
	if got := MissingPropertyMessage("comment"); got != "tidak dapat membuat comment baru karena properti yang dibutuhkan tidak ada" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := WrongTypeMessage("reply"); got != "tidak dapat membuat reply baru karena tipe data tidak sesuai" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&ValidationError{}, "validation"},
		{&NotFoundError{}, "not_found"},
		{fmt.Errorf("x: %w", &AuthorizationError{}), "forbidden"},
		{&AuthenticationError{}, "unauthenticated"},
		{errors.New("db down"), "internal"},
	}
	for _, c := range cases {
		if got := Kind(c.err); got != c.want {
			t.Errorf("Kind(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
