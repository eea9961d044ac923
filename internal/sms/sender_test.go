package sms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		prefix string
		want   string
	}{
		{name: "local leading zero", raw: "012345678", prefix: "+855", want: "+85512345678"},
		{name: "bare national number", raw: "12345678", prefix: "+855", want: "+85512345678"},
		{name: "already international", raw: "+85512345678", prefix: "+855", want: "+85512345678"},
		{name: "strips separators", raw: "012-345 678", prefix: "+855", want: "+85512345678"},
		{name: "strips punctuation", raw: "(012) 345.678", prefix: "+855", want: "+85512345678"},
		{name: "default prefix", raw: "012345678", prefix: "", want: "+85512345678"},
		{name: "other prefix", raw: "0711234567", prefix: "+254", want: "+254711234567"},
		{name: "empty input", raw: "--", prefix: "+855", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizePhone(tc.raw, tc.prefix))
		})
	}
}
