// Package curvega evolves an integer polynomial that separates two labeled sets of
// 2-D points with a generational genetic algorithm.
//
// A Curve is a genome of degree+1 bounded integer Coefficients (highest order first),
// each stored with a fixed two's-complement bit width so mutation can flip bits of its
// encoding. Fitness is the fraction of points a curve classifies correctly: positive
// points must lie on or above it, negative points strictly below.
//
// Each generation is scored, parents are drawn in proportion to fitness, children are
// produced by crossover and mutation, and the children replace the old population. The
// best curve ever seen is tracked in a BestTracker and returned in the Result.
//
// Basic usage:
//
//	config, err := curvega.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	engine, err := curvega.NewEngine(config, curvega.WithLogger(slog.Default()))
//	if err != nil {
//		log.Fatalf("Error creating engine: %v", err)
//	}
//
//	result, err := engine.Run()
//	if err != nil {
//		log.Fatalf("Run failed: %v", err)
//	}
//	fmt.Println(result.Best.Generation, result.Best.Fitness, result.Best.Coefficients)
//
// Selection ("cumulative", "mating_pool"), crossover ("single_point", "uniform") and
// mutation ("bitflip", "bitmask") are named strategies chosen by configuration.
package curvega
