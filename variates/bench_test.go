package variates_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
)

func BenchmarkFillUniform(b *testing.B) {
	buf, _ := matrix.NewDense(1<<18, 2)
	seq := seedseq.New(1)
	for _, threads := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("threads=%d", threads), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = variates.Fill(buf, variates.Uniform{Min: 0, Max: 1}, seq, variates.WithThreads(threads))
			}
		})
	}
}

func BenchmarkFillDirichlet(b *testing.B) {
	buf, _ := matrix.NewDense(1<<16, 6)
	seq := seedseq.New(1)
	alpha := []float64{1, 1, 1, 1, 1, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = variates.Fill(buf, variates.Dirichlet{Alpha: alpha}, seq)
	}
}
