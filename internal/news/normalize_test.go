package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café's Rate-Hike!!", "cafe's rate hike"},
		{"  USD   slumps  2%  ", "usd slumps 2%"},
		{"L’économie française", "l'economie francaise"},
		{"Fed (FOMC): \"dovish\" tilt?", "fed fomc dovish tilt"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Café's Rate-Hike!!",
		"Tarifs douaniers: +25% sur l'acier européen",
		"S&P 500 futures slide",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}
