// Package mktsample assembles synthetic merger samples.
//
// Generate is the single entry point. It validates a market.SampleSpec, assigns
// seed pools to the share, margin, firm-count and price streams in a fixed
// order, oversamples candidate draws, applies the filing-test and MNL
// feasibility filters, truncates to the requested size and derives
// concentration statistics.
//
//	spec := market.DefaultSampleSpec()
//	spec.SampleSize = 100_000
//	ms, err := mktsample.Generate(spec,
//		mktsample.WithSeeds(seedseq.DefaultList(4)...),
//		mktsample.WithThreads(8))
//	if err != nil {
//		return err
//	}
//	fmt.Println(ms.Summary())
//
// Seed order: (1) shares, (2) margins, (3) firm counts when shares are
// Dirichlet, (4) prices when prices are drawn independently. Streams a
// configuration does not use are skipped without shifting later ones.
//
// Oversampling factors live in an explicit rational table (DefaultOversampling)
// and can be replaced with WithOversampling.
package mktsample
