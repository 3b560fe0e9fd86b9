package rootlatex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`$\mu$`, "#mu"},
		{`$\mu p_{T}$`, "#mu p_{T}"},
		{`p_{T}`, "p_{T}"},
		{`a~b`, "a b"},
		{`x\,y\;z`, "xyz"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, c := range cases {
		require.Equal(t, c.want, Convert(c.in), "input %q", c.in)
	}
}
