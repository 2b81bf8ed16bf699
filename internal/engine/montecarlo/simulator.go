// Package montecarlo simulates correlated application outcomes. Two latent
// applicant effects (file quality, interview skill) are drawn once per trial
// and applied to every institution in that trial on the log-odds scale,
// inducing the all-or-nothing outcome clustering that independent Bernoulli
// draws miss.
package montecarlo

import (
	"context"
	"sync"

	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/engine/twostage"
	"medadmit-engine/internal/models"
)

// maxSampledPairs bounds the pairwise-correlation diagnostic for large
// lists.
const maxSampledPairs = 100

// SchoolProbability is one institution's base stage probabilities, as
// produced by the two-stage model.
type SchoolProbability struct {
	SchoolID   string
	PInterview float64
	PAccept    float64
}

// Config controls one simulation run.
type Config struct {
	Trials           int
	FileQualitySD    float64
	InterviewSkillSD float64
	Workers          int
	Seed             int64
}

// Result aggregates all trials of one run.
type Result struct {
	Trials                  int
	InterviewCount          models.Interval
	AcceptCount             models.Interval
	PAtLeastOne             models.Interval
	Distribution            models.OutcomeDistribution
	PerSchoolRates          map[string]float64
	CountVariance           float64
	MeanPairwiseCorrelation float64
}

type Simulator struct {
	cfg    Config
	logger logger.Logger
}

func New(cfg Config, log logger.Logger) *Simulator {
	if cfg.Trials <= 0 {
		cfg.Trials = 5000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Workers > cfg.Trials {
		cfg.Workers = cfg.Trials
	}
	return &Simulator{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "montecarlo"}),
	}
}

// workerState accumulates one worker's share of trials. Workers never share
// mutable state; segments are concatenated in worker order after the join,
// so a fixed seed and worker count reproduce results bit for bit.
type workerState struct {
	interviewCounts []float64
	acceptCounts    []float64
	accepted        [][]bool // [entity][local trial]
}

// Run executes the configured number of trials. Cancelling the context stops
// issuing further trials; completed trials are still aggregated.
func (s *Simulator) Run(ctx context.Context, probs []SchoolProbability) *Result {
	nEntities := len(probs)
	states := make([]*workerState, s.cfg.Workers)

	chunk := s.cfg.Trials / s.cfg.Workers
	extra := s.cfg.Trials % s.cfg.Workers

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		trials := chunk
		if w < extra {
			trials++
		}
		st := &workerState{
			interviewCounts: make([]float64, 0, trials),
			acceptCounts:    make([]float64, 0, trials),
			accepted:        make([][]bool, nEntities),
		}
		for e := range st.accepted {
			st.accepted[e] = make([]bool, 0, trials)
		}
		states[w] = st

		wg.Add(1)
		go func(w, trials int, st *workerState) {
			defer wg.Done()
			rng := NewRand(DeriveSeed(s.cfg.Seed, w))
			s.runTrials(ctx, rng, probs, trials, st)
		}(w, trials, st)
	}
	wg.Wait()

	// Concatenate worker segments in worker order.
	total := 0
	for _, st := range states {
		total += len(st.acceptCounts)
	}
	interviewCounts := make([]float64, 0, total)
	acceptCounts := make([]float64, 0, total)
	accepted := make([][]bool, nEntities)
	for e := range accepted {
		accepted[e] = make([]bool, 0, total)
	}
	for _, st := range states {
		interviewCounts = append(interviewCounts, st.interviewCounts...)
		acceptCounts = append(acceptCounts, st.acceptCounts...)
		for e := range accepted {
			accepted[e] = append(accepted[e], st.accepted[e]...)
		}
	}

	return s.aggregate(probs, interviewCounts, acceptCounts, accepted)
}

func (s *Simulator) runTrials(ctx context.Context, rng Source, probs []SchoolProbability, trials int, st *workerState) {
	for t := 0; t < trials; t++ {
		if t%256 == 0 && ctx.Err() != nil {
			return
		}

		// Shared per-trial latent draws, applied to every entity.
		fileEffect := rng.NormFloat64() * s.cfg.FileQualitySD
		interviewEffect := rng.NormFloat64() * s.cfg.InterviewSkillSD

		interviews := 0
		accepts := 0
		for e, p := range probs {
			accepted := false
			p1 := twostage.AdjustLogOdds(p.PInterview, fileEffect)
			if rng.Float64() < p1 {
				interviews++
				p2 := twostage.AdjustLogOdds(p.PAccept, interviewEffect)
				if rng.Float64() < p2 {
					accepts++
					accepted = true
				}
			}
			st.accepted[e] = append(st.accepted[e], accepted)
		}

		st.interviewCounts = append(st.interviewCounts, float64(interviews))
		st.acceptCounts = append(st.acceptCounts, float64(accepts))
	}
}

func (s *Simulator) aggregate(probs []SchoolProbability, interviewCounts, acceptCounts []float64, accepted [][]bool) *Result {
	n := len(acceptCounts)
	res := &Result{
		Trials:         n,
		PerSchoolRates: make(map[string]float64, len(probs)),
	}
	if n == 0 {
		return res
	}

	res.InterviewCount = CI80(interviewCounts)
	res.AcceptCount = CI80(acceptCounts)
	res.CountVariance = Variance(acceptCounts)

	atLeastOne := 0
	var d models.OutcomeDistribution
	for _, c := range acceptCounts {
		switch {
		case c == 0:
			d.Zero++
		case c == 1:
			d.One++
			atLeastOne++
		case c <= 3:
			d.TwoToThree++
			atLeastOne++
		default:
			d.FourPlus++
			atLeastOne++
		}
	}
	fn := float64(n)
	d.Zero /= fn
	d.One /= fn
	d.TwoToThree /= fn
	d.FourPlus /= fn
	res.Distribution = d
	res.PAtLeastOne = WilsonInterval(atLeastOne, n)

	perEntity := make([]int, len(probs))
	for e := range probs {
		count := 0
		for _, ok := range accepted[e] {
			if ok {
				count++
			}
		}
		perEntity[e] = count
		res.PerSchoolRates[probs[e].SchoolID] = float64(count) / fn
	}

	res.MeanPairwiseCorrelation = s.meanPairwiseCorrelation(accepted, perEntity, n)

	return res
}

// meanPairwiseCorrelation averages the Pearson correlation of final-outcome
// indicators over a bounded sample of entity pairs. Pairs with a degenerate
// marginal are skipped; no valid pairs yields the defined fallback of 0.
func (s *Simulator) meanPairwiseCorrelation(accepted [][]bool, perEntity []int, n int) float64 {
	nEntities := len(accepted)
	if nEntities < 2 {
		return 0
	}

	type pair struct{ a, b int }
	pairs := make([]pair, 0, nEntities*(nEntities-1)/2)
	for a := 0; a < nEntities; a++ {
		for b := a + 1; b < nEntities; b++ {
			pairs = append(pairs, pair{a, b})
		}
	}
	if len(pairs) > maxSampledPairs {
		sampled := make([]pair, 0, maxSampledPairs)
		stride := float64(len(pairs)) / maxSampledPairs
		for i := 0; i < maxSampledPairs; i++ {
			sampled = append(sampled, pairs[int(float64(i)*stride)])
		}
		pairs = sampled
	}

	sum := 0.0
	valid := 0
	for _, p := range pairs {
		both := 0
		for t := 0; t < n; t++ {
			if accepted[p.a][t] && accepted[p.b][t] {
				both++
			}
		}
		if corr, ok := phiCorrelation(n, perEntity[p.a], perEntity[p.b], both); ok {
			sum += corr
			valid++
		}
	}

	if valid == 0 {
		s.logger.Debug("all sampled pairs degenerate, correlation fallback 0", map[string]interface{}{
			"pairs": len(pairs),
		})
		return 0
	}
	return sum / float64(valid)
}
