package collection

// DecileCount is the number of cut points in a DecileTable (0.1 through 1.0)
const DecileCount = 10

// ObservationSet holds one outcome per trial: the number of meals bought
// before every toy was found. Consumers treat it as read-only.
type ObservationSet []int

// Floats converts the observations to float64 for the analysis components
func (o ObservationSet) Floats() []float64 {
	out := make([]float64, len(o))
	for i, v := range o {
		out[i] = float64(v)
	}
	return out
}

// EdgePolicy decides what happens to values whose bucket index lands on the
// bucket count, which is where the observed maximum falls
type EdgePolicy string

const (
	// EdgeDrop excludes top-edge values from every bucket and counts them as dropped
	EdgeDrop EdgePolicy = "drop"
	// EdgeClamp folds top-edge values into the last bucket
	EdgeClamp EdgePolicy = "clamp"
)

// Histogram is an equal-width bucketing of an observation set
// INVARIANTS:
// - len(Counts) equals the requested bucket count
// - sum(Counts) + Dropped equals the number of binned values
type Histogram struct {
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Counts  []int      `json:"counts"`
	Dropped int        `json:"dropped"`
	Policy  EdgePolicy `json:"policy"`
}

// Buckets returns the configured bucket count
func (h *Histogram) Buckets() int {
	return len(h.Counts)
}

// Width returns the width of a single bucket
func (h *Histogram) Width() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return (h.Max - h.Min) / float64(len(h.Counts))
}

// Total returns the number of values that landed in a bucket
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// DecileTable holds quantiles at cut points 0.1, 0.2, ..., 1.0
type DecileTable [DecileCount]float64

// Summary describes the distribution of trial outcomes
type Summary struct {
	Count   int         `json:"count"`
	Mean    float64     `json:"mean"`
	StdDev  float64     `json:"std_dev"` // sample standard deviation, 0 for a single observation
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Deciles DecileTable `json:"deciles"`
}
