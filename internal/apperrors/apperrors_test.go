package apperrors_test

import (
	"fmt"
	"testing"

	"github.com/neurosx/schedctl/internal/apperrors"
)

func TestKindOf_DirectError(t *testing.T) {
	err := apperrors.New(apperrors.NotFound, "resident not found")
	if got := apperrors.KindOf(err); got != apperrors.NotFound {
		t.Errorf("KindOf = %v, want %v", got, apperrors.NotFound)
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := apperrors.Wrap(apperrors.Conflict, "schedule already exists", cause)

	if got := apperrors.KindOf(err); got != apperrors.Conflict {
		t.Errorf("KindOf = %v, want %v", got, apperrors.Conflict)
	}
	if !errorsIs(err, cause) {
		t.Error("expected Wrap to preserve the cause via Unwrap")
	}
}

func TestKindOf_ForeignError_DefaultsInternal(t *testing.T) {
	err := fmt.Errorf("some other package's error")
	if got := apperrors.KindOf(err); got != apperrors.Internal {
		t.Errorf("KindOf = %v, want %v", got, apperrors.Internal)
	}
}

func TestKindOf_NestedThroughFmtErrorf(t *testing.T) {
	inner := apperrors.New(apperrors.PermissionDenied, "requires --as-admin")
	outer := fmt.Errorf("command failed: %w", inner)

	if got := apperrors.KindOf(outer); got != apperrors.PermissionDenied {
		t.Errorf("KindOf = %v, want %v", got, apperrors.PermissionDenied)
	}
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := apperrors.Wrap(apperrors.Internal, "reading file", fmt.Errorf("permission denied"))
	want := "internal: reading file: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func errorsIs(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
