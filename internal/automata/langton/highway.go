package langton

import "strings"

// HighwayPattern is the frozen 325-symbol heading-code sequence of the
// diagonal highway an ant settles into (period 104), in the orientation the
// s8 preset builds it. Highways along the other diagonals produce the same
// sequence with every code shifted by a quarter turn; see Rotations.
const HighwayPattern = "" +
	"23230121032321210323012121032321030123232103030103012321232103010" +
	"30301012121232103010121032303210121210323230121032321210323012121" +
	"03232103012323210303010301232123210301030301012121232103010121032" +
	"30321012121032323012103232121032301212103232103012323210303010301" +
	"23212321030103030101212123210301012103230321012121032323012103232"

// Rotations holds HighwayPattern shifted by k quarter turns at index k.
var Rotations = rotations(HighwayPattern)

func rotations(pattern string) [4]string {
	var out [4]string
	for k := range out {
		b := []byte(pattern)
		for i, c := range b {
			b[i] = '0' + (c-'0'+byte(k))%4
		}
		out[k] = string(b)
	}
	return out
}

// Detect reports whether the highway pattern occurs anywhere in history, in
// any of its four orientations.
func Detect(history string) bool {
	for _, p := range Rotations {
		if strings.Contains(history, p) {
			return true
		}
	}
	return false
}

// History is the append-only heading-code record of one ant.
type History struct {
	codes []byte
}

// Append records one heading.
func (h *History) Append(d Direction) {
	h.codes = append(h.codes, d.Code())
}

// Len returns the number of recorded headings.
func (h *History) Len() int {
	return len(h.codes)
}

// String returns the codes joined in tick order.
func (h *History) String() string {
	return string(h.codes)
}

// Detector is an incremental highway detector: it consumes one heading per
// tick and answers the same question as Detect over everything fed so far,
// in O(1) amortised time per symbol. It runs one KMP automaton per
// orientation; relabelling the alphabet leaves the failure function intact,
// so all four share it.
type Detector struct {
	patterns [4]string
	fail     []int
	matched  [4]int
	fed      uint64
	found    bool
	at       uint64
	rotation int
}

// NewDetector creates a detector for HighwayPattern.
func NewDetector() *Detector {
	return newDetector(HighwayPattern)
}

func newDetector(pattern string) *Detector {
	// KMP failure function: fail[i] is the length of the longest proper
	// prefix of pattern[:i+1] that is also its suffix.
	fail := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = fail[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		fail[i] = k
	}
	return &Detector{patterns: rotations(pattern), fail: fail}
}

// Feed consumes one heading and reports whether the pattern has occurred.
// Once found, the answer stays true.
func (d *Detector) Feed(dir Direction) bool {
	d.fed++
	if d.found {
		return true
	}
	code := dir.Code()
	for r, pattern := range d.patterns {
		m := d.matched[r]
		for m > 0 && code != pattern[m] {
			m = d.fail[m-1]
		}
		if code == pattern[m] {
			m++
		}
		if m == len(pattern) {
			d.found = true
			d.at = d.fed
			d.rotation = r
			return true
		}
		d.matched[r] = m
	}
	return false
}

// Found reports whether the pattern has occurred.
func (d *Detector) Found() bool {
	return d.found
}

// FoundAt returns the number of symbols fed when the pattern first completed,
// or zero if it has not.
func (d *Detector) FoundAt() uint64 {
	return d.at
}

// Rotation returns how many quarter turns the matched highway is shifted
// from HighwayPattern. Only meaningful once Found.
func (d *Detector) Rotation() int {
	return d.rotation
}

// Fed returns how many headings have been consumed.
func (d *Detector) Fed() uint64 {
	return d.fed
}

// Reset forgets everything fed so far.
func (d *Detector) Reset() {
	d.matched = [4]int{}
	d.fed = 0
	d.found = false
	d.at = 0
	d.rotation = 0
}
