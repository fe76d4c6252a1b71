// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// configs holds every tunable parameter of a Manager, set through functional
// options passed to New, grounded on the teacher's config.go.
type configs struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int

	// BKFDD-specific runtime knobs, spec.md §6 "Runtime configuration".
	mode                 BkfddMode
	autoDyn              bool
	siftMaxVar           int
	siftMaxSwap          int
	maxGrowth            float64
	davioExistFactor     float64
	chooseThreshold      int
	chooseNewBoundFactor float64
	chooseDavBoundFactor float64
	recomb               int
	arcViolation         int
	symmViolation        int
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = 2*varnum + 2
	c.mode = ModeSD
	c.siftMaxVar = 0 // unbounded
	c.siftMaxSwap = 0
	c.maxGrowth = 2.0
	c.davioExistFactor = 1.0
	c.chooseThreshold = 0
	c.chooseNewBoundFactor = 1.0
	c.chooseDavBoundFactor = 0.95
	c.recomb = 0
	c.arcViolation = 0
	c.symmViolation = 0
	return c
}

// Nodesize sets a preferred initial arena size (default: large enough for
// the constants and the projection node of every variable).
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize caps the total number of arena nodes (0, the default, means no
// limit).
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) { c.maxnodesize = size }
}

// Maxnodeincrease caps how many nodes a single resize may add.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) { c.maxnodeincrease = size }
}

// Minfreenodes sets the ratio (%) of free nodes that must remain after a GC
// before a resize is triggered instead.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) { c.minfreenodes = ratio }
}

// Cachesize sets the initial computed-table cache size.
func Cachesize(size int) func(*configs) {
	return func(c *configs) { c.cachesize = size }
}

// Cacheratio sets a cache-to-arena growth ratio (%); 0, the default, means
// the cache never grows on its own.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) { c.cacheratio = ratio }
}

// Mode sets bkfddMode (spec.md §6): ModeSND restricts dynamic expansion
// introduction to Shannon/negative-Davio, ModeSD allows all six.
func Mode(mode BkfddMode) func(*configs) {
	return func(c *configs) { c.mode = mode }
}

// AutoDyn sets the manager's autoDyn flag. No operation reads the flag:
// reordering runs only when Reorder is called, and no node-count threshold
// starts it in the background. A cancelled Reorder pass clears the flag.
func AutoDyn(on bool) func(*configs) {
	return func(c *configs) { c.autoDyn = on }
}

// SiftMaxVar bounds how many variables a single sift pass considers (0 means
// unbounded).
func SiftMaxVar(n int) func(*configs) {
	return func(c *configs) { c.siftMaxVar = n }
}

// SiftMaxSwap bounds the total number of adjacent swaps in a single sift
// pass (0 means unbounded).
func SiftMaxSwap(n int) func(*configs) {
	return func(c *configs) { c.siftMaxSwap = n }
}

// MaxGrowth bounds how much the total live node count may grow, relative to
// its size when the current variable's sift started, before the sifter gives
// up moving that variable further.
func MaxGrowth(factor float64) func(*configs) {
	return func(c *configs) { c.maxGrowth = factor }
}

// DavioExistFactor bounds, as a fraction of Varnum, how many levels may hold
// a non-Shannon expansion at once (spec.md §4.9 `_restricted` variants).
func DavioExistFactor(factor float64) func(*configs) {
	return func(c *configs) { c.davioExistFactor = factor }
}

// ChooseNewBoundFactor sets the acceptance bound for chooseSD3/chooseSD6: a
// new size must be strictly less than this factor times the old size.
func ChooseNewBoundFactor(factor float64) func(*configs) {
	return func(c *configs) { c.chooseNewBoundFactor = factor }
}

// ChooseDavBoundFactor sets the stricter acceptance bound applied when the
// winning expansion is a Davio.
func ChooseDavBoundFactor(factor float64) func(*configs) {
	return func(c *configs) { c.chooseDavBoundFactor = factor }
}

// Recomb sets the `recomb` threshold (%) used by ddSecDiffCheck to decide
// when two adjacent classical levels should aggregate into a group.
func Recomb(percent int) func(*configs) {
	return func(c *configs) { c.recomb = percent }
}

// ArcViolation sets the percentage of arc-count mismatches bkfddExtSymmCheck2
// tolerates before rejecting aggregation.
func ArcViolation(percent int) func(*configs) {
	return func(c *configs) { c.arcViolation = percent }
}

// SymmViolation sets the percentage of symmetry-pattern mismatches
// bkfddExtSymmCheck1 tolerates before rejecting aggregation.
func SymmViolation(percent int) func(*configs) {
	return func(c *configs) { c.symmViolation = percent }
}
