package errors

import (
	"testing"
)

func TestAppend(t *testing.T) {
	cases := map[string]struct {
		errs     []error
		wantNil  bool
		wantSize int
	}{
		"no errors given": {
			errs:    nil,
			wantNil: true,
		},
		"only nil errors given": {
			errs:    []error{nil, nil, nil},
			wantNil: true,
		},
		"single error": {
			errs:     []error{ErrNotFound},
			wantSize: 1,
		},
		"nil errors are ignored": {
			errs:     []error{nil, ErrNotFound, nil, ErrState},
			wantSize: 2,
		},
		"clubbed errors are flattened": {
			errs:     []error{Append(ErrNotFound, ErrState), ErrEmpty},
			wantSize: 3,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Append(tc.errs...)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("want nil, got %+v", err)
				}
				return
			}
			m, ok := err.(multiError)
			if !ok {
				t.Fatalf("want a multi error, got %T", err)
			}
			if len(m) != tc.wantSize {
				t.Fatalf("want %d errors, got %d", tc.wantSize, len(m))
			}
		})
	}
}

func TestIsMatchesGroupMembers(t *testing.T) {
	group := Append(
		Wrap(ErrNotFound, "first"),
		Field("Name", Wrap(ErrEmpty, "second"), ""),
	)
	if !ErrNotFound.Is(group) {
		t.Fatal("want a match on a group member")
	}
	if !ErrEmpty.Is(group) {
		t.Fatal("want a match on a field error member")
	}
	if ErrState.Is(group) {
		t.Fatal("no member matches this kind")
	}
}

func TestMultiErrorMessage(t *testing.T) {
	single := Append(ErrNotFound)
	if got, want := single.Error(), "not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	many := Append(ErrNotFound, ErrEmpty)
	const want = "2 errors occurred:\n\tnot found\n\tvalue is empty"
	if got := many.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
