package widget

import "sort"

const (
	StatisticsKey = "statistics"
	MinDataValue  = 1
	MaxDataValue  = 10
	MaxDataPoints = 12
)

var sampleData = []int{2, 4, 4, 4, 5, 5, 7, 9}

type Bar struct {
	Value    int
	Height   float64
	Mode     bool
	Selected bool
}

// Statistics derives mean, median and mode from a data set the learner can
// edit one value at a time.
type Statistics struct {
	data     []int
	selected int
}

func NewStatistics() Statistics {
	return NewStatisticsFrom(sampleData)
}

// NewStatisticsFrom keeps data as given; only the editing events clamp.
func NewStatisticsFrom(data []int) Statistics {
	return Statistics{data: append([]int(nil), data...)}
}

func (s Statistics) Key() string { return StatisticsKey }

func (s Statistics) Data() []int { return append([]int(nil), s.data...) }

func (s Statistics) Selected() int { return s.selected }

func (s Statistics) Mean() float64 {
	if len(s.data) == 0 {
		return 0
	}
	sum := 0
	for _, v := range s.data {
		sum += v
	}
	return float64(sum) / float64(len(s.data))
}

func (s Statistics) Median() float64 {
	n := len(s.data)
	if n == 0 {
		return 0
	}
	sorted := append([]int(nil), s.data...)
	sort.Ints(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// Mode returns every value sharing the highest frequency, ascending.
func (s Statistics) Mode() []int {
	if len(s.data) == 0 {
		return nil
	}
	freq := map[int]int{}
	best := 0
	for _, v := range s.data {
		freq[v]++
		if freq[v] > best {
			best = freq[v]
		}
	}
	modes := make([]int, 0, len(freq))
	for v, c := range freq {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Ints(modes)
	return modes
}

func (s Statistics) Max() int {
	if len(s.data) == 0 {
		return 0
	}
	m := s.data[0]
	for _, v := range s.data[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Bars scales each value against the largest one.
func (s Statistics) Bars() []Bar {
	modes := map[int]bool{}
	for _, v := range s.Mode() {
		modes[v] = true
	}
	peak := float64(s.Max())
	bars := make([]Bar, len(s.data))
	for i, v := range s.data {
		h := 0.0
		if peak > 0 {
			h = float64(v) / peak
		}
		bars[i] = Bar{Value: v, Height: h, Mode: modes[v], Selected: i == s.selected}
	}
	return bars
}

func (s Statistics) Select(i int) Statistics {
	s.selected = clampInt(i, 0, max(0, len(s.data)-1))
	return s
}

func (s Statistics) SetValue(i, v int) Statistics {
	if i < 0 || i >= len(s.data) {
		return s
	}
	data := s.Data()
	data[i] = clampInt(v, MinDataValue, MaxDataValue)
	s.data = data
	return s
}

// Append adds a value at the end and selects it. Full data sets are left alone.
func (s Statistics) Append(v int) Statistics {
	if len(s.data) >= MaxDataPoints {
		return s
	}
	s.data = append(s.Data(), clampInt(v, MinDataValue, MaxDataValue))
	s.selected = len(s.data) - 1
	return s
}

// RemoveAt drops one value but never empties the set.
func (s Statistics) RemoveAt(i int) Statistics {
	if len(s.data) <= 1 || i < 0 || i >= len(s.data) {
		return s
	}
	data := make([]int, 0, len(s.data)-1)
	data = append(data, s.data[:i]...)
	data = append(data, s.data[i+1:]...)
	s.data = data
	return s.Select(s.selected)
}

func (s Statistics) Controls() []Control {
	value := 0.0
	if s.selected < len(s.data) {
		value = float64(s.data[s.selected])
	}
	return []Control{
		{Label: "Selected bar", Value: float64(s.selected + 1), Min: 1, Max: float64(max(1, len(s.data))), Step: 1},
		{Label: "Value", Value: value, Min: MinDataValue, Max: MaxDataValue, Step: 1},
		{Label: "Data points", Value: float64(len(s.data)), Min: 1, Max: MaxDataPoints, Step: 1},
	}
}

func (s Statistics) Nudge(control, steps int) Model {
	switch control {
	case 0:
		return s.Select(s.selected + steps)
	case 1:
		if len(s.data) == 0 {
			return s
		}
		return s.SetValue(s.selected, s.data[s.selected]+steps)
	case 2:
		out := s
		for ; steps > 0; steps-- {
			last := MinDataValue
			if n := len(out.data); n > 0 {
				last = out.data[n-1]
			}
			out = out.Append(last)
		}
		for ; steps < 0; steps++ {
			out = out.RemoveAt(len(out.data) - 1)
		}
		return out
	}
	return s
}

func (s Statistics) Reset() Model { return NewStatistics() }
