package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mirrorless Cameras", "mirrorless-cameras"},
		{"  Sony A7 IV  ", "sony-a7-iv"},
		{"Lights & Stands", "lights-stands"},
		{"ALREADY-SLUGGED", "already-slugged"},
		{"---", "item"},
		{"", "item"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
