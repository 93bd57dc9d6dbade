package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	for name, tc := range map[string]struct {
		take, offset int
		wantTake     int
		wantOffset   int
	}{
		"default":         {take: 10, offset: 0, wantTake: 10, wantOffset: 0},
		"too large":       {take: 500, offset: 20, wantTake: 100, wantOffset: 20},
		"zero":            {take: 0, offset: 0, wantTake: 1, wantOffset: 0},
		"negative take":   {take: -1, offset: 0, wantTake: 1, wantOffset: 0},
		"negative offset": {take: 5, offset: -3, wantTake: 5, wantOffset: 0},
	} {
		t.Run(name, func(t *testing.T) {
			take, offset := clampPage(tc.take, tc.offset)
			assert.Equal(t, tc.wantTake, take)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
