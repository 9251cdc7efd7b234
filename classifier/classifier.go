// Package classifier wraps the food classification model behind a narrow
// contract. Backends return every candidate they saw; picking and validating
// the winner is the caller's job.
package classifier

import "context"

// Candidate is one label/confidence pair reported by a backend. Confidence is
// a probability in [0,1]; backends rescale whatever their runtime reports.
type Candidate struct {
	Label      string
	Confidence float64
}

// Classifier identifies the food item in a decoded raster image.
type Classifier interface {
	Classify(ctx context.Context, imageBytes []byte) ([]Candidate, error)
}

// Top selects the highest-confidence candidate. Ties are broken by
// first-returned order, so a fixed backend output yields a fixed winner.
func Top(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}
