// Package neh implements the Nawaz-Enscore-Ham constructive heuristic, the
// deterministic seed every solver in this module starts from.
package neh

import (
	"sort"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// Seed builds the NEH permutation for inst:
//  1. sort jobs by ascending due date, stable tie-break on job id;
//  2. start the partial sequence with the first job;
//  3. for each remaining job in that order, try every insertion position in
//     the current partial sequence and keep the one with minimal partial
//     weighted tardiness, tie-breaking to the earliest position.
//
// Returns a full, valid permutation in O(N^2 * NM) time.
func Seed(inst *flowshop.Instance) (flowshop.Permutation, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	n := inst.Jobs

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return inst.DueDate(order[i]) < inst.DueDate(order[j])
	})

	partial := make([]int, 0, n)
	partial = append(partial, order[0])

	// Scratch buffers reused across every insertion trial: a completion
	// buffer sized for the largest partial sequence (n) and a candidate
	// permutation buffer of the same size.
	buf := make([]int, flowshop.CompletionBufferLen(n, inst.Machines))
	cand := make([]int, 0, n)

	for idx := 1; idx < n; idx++ {
		job := order[idx]
		k := len(partial)

		bestPos := 0
		bestWT := insertAndScore(inst, partial, job, 0, &cand, buf)

		for pos := 1; pos <= k; pos++ {
			wt := insertAndScore(inst, partial, job, pos, &cand, buf)
			if wt < bestWT {
				bestWT = wt
				bestPos = pos
			}
		}

		partial = insertInto(partial, job, bestPos)
	}

	if err := flowshop.ValidatePermutation(partial, n); err != nil {
		return nil, err
	}
	return flowshop.Permutation(partial), nil
}

// insertAndScore builds partial+job inserted at pos into *cand (reusing its
// backing array) and returns the resulting partial weighted tardiness.
func insertAndScore(inst *flowshop.Instance, partial []int, job, pos int, cand *[]int, buf []int) float64 {
	c := (*cand)[:0]
	c = append(c, partial[:pos]...)
	c = append(c, job)
	c = append(c, partial[pos:]...)
	*cand = c

	flowshop.FillCompletion(inst, c, buf)
	return flowshop.WeightedTardiness(inst, c, buf, false)
}

// insertInto returns a new slice with job inserted at pos.
func insertInto(partial []int, job, pos int) []int {
	out := make([]int, 0, len(partial)+1)
	out = append(out, partial[:pos]...)
	out = append(out, job)
	out = append(out, partial[pos:]...)
	return out
}
