package monitor

// HistorySize is the number of readings kept for the trend chart.
const HistorySize = 50

// History is a fixed-capacity ring of battery percentages. When full,
// pushing evicts the oldest value.
type History struct {
	buf   []int
	start int
	n     int
}

// NewHistory creates an empty history holding at most size values.
func NewHistory(size int) *History {
	if size <= 0 {
		size = HistorySize
	}
	return &History{buf: make([]int, size)}
}

// Push appends v, evicting the oldest value when at capacity.
func (h *History) Push(v int) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = v
		h.n++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Values returns a copy of the readings, oldest first.
func (h *History) Values() []int {
	out := make([]int, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Last returns the newest value.
func (h *History) Last() (int, bool) {
	if h.n == 0 {
		return 0, false
	}
	return h.buf[(h.start+h.n-1)%len(h.buf)], true
}

// Len returns the number of stored values.
func (h *History) Len() int { return h.n }

// Cap returns the maximum number of stored values.
func (h *History) Cap() int { return len(h.buf) }
