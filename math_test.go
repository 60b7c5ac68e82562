// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConvergence(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		cmps  []int
		steps int
		flips int
	}{
		{[]int{0}, 1, 0},
		{[]int{1, 1, 1, 0}, 4, 0},
		{[]int{-1, -1, -1, -1, -1}, -1, 0},
		{[]int{1, -1, 0}, 3, 1},
		{[]int{1, -1, 1, -1, 1, -1}, 5, 4},
		{[]int{1, -1, -1, 1, 1, -1, 1}, 7, 4},
		{[]int{1, -1, 1, -1}, -1, 3},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			cv := convergence{op: "test"}
			steps := -1
			for j, cmp := range test.cmps {
				if cv.done(cmp) {
					steps = j + 1
					break
				}
			}
			a.Equal(test.steps, steps)
			a.Equal(test.flips, cv.flips)
		})
	}
}

func TestConvergenceLogsForcedStop(t *testing.T) {
	a := assert.New(t)
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer SetLogger(zerolog.Nop())

	cv := convergence{op: "ln"}
	for i := 0; i <= maxVacillations+1; i++ {
		if cv.done(1 - 2*(i%2)) {
			break
		}
	}
	a.Equal(maxVacillations+1, cv.flips)
	a.Contains(buf.String(), `"op":"ln"`)
	a.Contains(buf.String(), `"message":"iteration stopped"`)
	a.Contains(buf.String(), fmt.Sprintf(`"flips":%d`, maxVacillations+1))
}
