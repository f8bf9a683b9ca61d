package faucet

import (
	"testing"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/geodetest/assert"
)

func TestSetAdminMsgValidate(t *testing.T) {
	admin := geodetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *SetAdminMsg
		field   string
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &SetAdminMsg{
				Metadata: &geode.Metadata{Schema: 1},
				NewAdmin: admin,
			},
		},
		"missing metadata": {
			msg: &SetAdminMsg{
				NewAdmin: admin,
			},
			field:   "Metadata",
			wantErr: errors.ErrMetadata,
		},
		"missing new admin": {
			msg: &SetAdminMsg{
				Metadata: &geode.Metadata{Schema: 1},
			},
			field:   "NewAdmin",
			wantErr: errors.ErrEmpty,
		},
		"corrupted new admin": {
			msg: &SetAdminMsg{
				Metadata: &geode.Metadata{Schema: 1},
				NewAdmin: []byte("too short"),
			},
			field:   "NewAdmin",
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

func TestSetPayoutsMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *SetPayoutsMsg
		field   string
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &SetPayoutsMsg{
				Metadata:        &geode.Metadata{Schema: 1},
				EligiblePayout:  1,
				ClaimPayout:     10,
				RateLimitWindow: 3600,
				AddressQuota:    4,
				Funding:         1000,
			},
		},
		"zero values are accepted": {
			msg: &SetPayoutsMsg{
				Metadata: &geode.Metadata{Schema: 1},
			},
		},
		"missing metadata": {
			msg:     &SetPayoutsMsg{},
			field:   "Metadata",
			wantErr: errors.ErrMetadata,
		},
		"negative rate limit window": {
			msg: &SetPayoutsMsg{
				Metadata:        &geode.Metadata{Schema: 1},
				RateLimitWindow: -1,
			},
			field:   "RateLimitWindow",
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

func TestClaimMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     geode.Msg
		field   string
		wantErr *errors.Error
	}{
		"valid claim": {
			msg: &ClaimMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Address:  []byte("192.0.2.7"),
			},
		},
		"claim without an address": {
			msg: &ClaimMsg{
				Metadata: &geode.Metadata{Schema: 1},
			},
			field:   "Address",
			wantErr: errors.ErrEmpty,
		},
		"valid eligibility check": {
			msg: &CheckEligibilityMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Address:  []byte("192.0.2.7"),
			},
		},
		"eligibility check without an address": {
			msg: &CheckEligibilityMsg{
				Metadata: &geode.Metadata{Schema: 1},
			},
			field:   "Address",
			wantErr: errors.ErrEmpty,
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
