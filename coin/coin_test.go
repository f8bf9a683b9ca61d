package coin

import (
	"encoding/json"
	"testing"
)

func TestAmountAdd(t *testing.T) {
	cases := map[string]struct {
		a    Amount
		b    Amount
		want Amount
	}{
		"zero plus zero": {
			a:    0,
			b:    0,
			want: 0,
		},
		"plain addition": {
			a:    100,
			b:    23,
			want: 123,
		},
		"addition up to the maximum": {
			a:    MaxAmount - 1,
			b:    1,
			want: MaxAmount,
		},
		"overflow clamps to the maximum": {
			a:    MaxAmount,
			b:    1,
			want: MaxAmount,
		},
		"big overflow clamps to the maximum": {
			a:    MaxAmount - 10,
			b:    MaxAmount - 10,
			want: MaxAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Add(tc.b); got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAmountSub(t *testing.T) {
	got, err := Amount(100).Sub(40)
	if err != nil {
		t.Fatalf("cannot subtract: %+v", err)
	}
	if got != 60 {
		t.Fatalf("want 60, got %s", got)
	}

	if _, err := Amount(1).Sub(2); err == nil {
		t.Fatal("subtracting more than owned must fail")
	}
}

func TestAmountCompare(t *testing.T) {
	if Amount(5).Compare(3) != 1 {
		t.Error("5 must be greater than 3")
	}
	if Amount(3).Compare(5) != -1 {
		t.Error("3 must be less than 5")
	}
	if Amount(5).Compare(5) != 0 {
		t.Error("5 must be equal to 5")
	}
	if !Amount(5).IsGTE(5) || !Amount(6).IsGTE(5) || Amount(4).IsGTE(5) {
		t.Error("broken IsGTE")
	}
}

func TestAmountJSONUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Amount
		wantErr bool
	}{
		"a number": {
			raw:  `421`,
			want: 421,
		},
		"a string": {
			raw:  `"421"`,
			want: 421,
		},
		"max value as a string": {
			raw:  `"18446744073709551615"`,
			want: MaxAmount,
		},
		"a negative number string": {
			raw:     `"-1"`,
			wantErr: true,
		},
		"not a number": {
			raw:     `"banana"`,
			wantErr: true,
		},
		"a boolean": {
			raw:     `true`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tc.raw), &a)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("cannot unmarshal: %+v", err)
			}
			if a != tc.want {
				t.Fatalf("want %s, got %s", tc.want, a)
			}
		})
	}
}

func TestAmountJSONRoundtrip(t *testing.T) {
	raw, err := json.Marshal(Amount(9876543210))
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	// Serialized as a string to survive JSON number precision limits.
	if string(raw) != `"9876543210"` {
		t.Fatalf("unexpected serialization: %s", raw)
	}
	var a Amount
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if a != 9876543210 {
		t.Fatalf("unexpected value: %s", a)
	}
}
