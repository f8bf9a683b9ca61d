package cash

import (
	"strings"
	"testing"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/geodetest/assert"
)

func TestSendMsgValidate(t *testing.T) {
	alice := geodetest.NewCondition().Address()
	bob := geodetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *SendMsg
		field   string
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice,
				Dest:     bob,
				Amount:   5,
			},
		},
		"missing metadata": {
			msg: &SendMsg{
				Src:    alice,
				Dest:   bob,
				Amount: 5,
			},
			field:   "Metadata",
			wantErr: errors.ErrMetadata,
		},
		"missing source": {
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Dest:     bob,
				Amount:   5,
			},
			field:   "Src",
			wantErr: errors.ErrEmpty,
		},
		"zero amount": {
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice,
				Dest:     bob,
			},
			field:   "Amount",
			wantErr: errors.ErrAmount,
		},
		"memo too long": {
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice,
				Dest:     bob,
				Amount:   5,
				Memo:     strings.Repeat("x", maxMemoSize+1),
			},
			field:   "Memo",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			assert.FieldError(t, err, tc.field, tc.wantErr)
		})
	}
}
