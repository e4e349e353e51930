package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"weight suffix", "Afghani Badder - 1g", "afghani badder"},
		{"parenthetical", "Wedding Cake (Limited Drop)", "wedding cake"},
		{"brand marker", "Sour Diesel [BT] 2g", "sour diesel"},
		{"brand words", "Black Tie OG Kush 7g", "og kush"},
		{"accents", "Crème Brûlée (Limited) 1G", "creme brulee"},
		{"extra whitespace", "  Blue   Dream\tShatter ", "blue dream shatter"},
		{"noise only inside words", "Btown Glue 1gram", "btown glue 1gram"},
		{"punctuation exposes marker", "B.T. Zkittlez", "zkittlez"},
		{"spaced brand words", "  Black   Tie  OG ", "og"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Afghani Badder - 1g",
		"b-t Gelato",
		"black bt tie",
		"(a(b)c) X",
		"Crème Brûlée",
		"GMO   Cookies (Hash Rosin) 2G",
		"Über Kush!!",
		"7g",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
