package timeline

import "github.com/pkordes/wedding-timeline/internal/domain"

// Build runs every phase in order over a fresh Accumulator and returns the
// emitted blocks, in emission order, and the warnings collected along the way.
// The last block is always the coverage-ends sentinel.
//
// Build does not validate in; callers should run in.Validate first.
func Build(in domain.EventInputs) ([]domain.Block, []string) {
	acc := NewAccumulator(in)
	for _, phase := range Phases {
		acc = phase(in, acc)
	}
	return acc.Blocks, acc.Warnings
}
