package functional

import (
	"sync"

	"github.com/san-kum/diffusim/internal/randx"
)

// runEnsemble evaluates trial once per particle and collects the results.
// Trials share no state: worker w handles trial i with a stream derived only
// from (seed, i), so results are independent of scheduling and reproducible
// for a fixed seed. The first trial error aborts the whole ensemble.
func runEnsemble(cfg Config, trial func(src *randx.Stream) (float64, error)) ([]float64, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = randx.EntropySeed()
	}
	results := make([]float64, cfg.Particles)
	errs := make([]error, cfg.Particles)

	workers := cfg.Workers
	if workers > cfg.Particles {
		workers = cfg.Particles
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				src := randx.Substream(seed, uint64(i))
				results[i], errs[i] = trial(src)
			}
		}()
	}
	for i := 0; i < cfg.Particles; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
