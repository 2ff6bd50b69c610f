package device

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

type noiseSource struct {
	rng   *rand.Rand
	scale float64
}

func newNoise(seed uint64, amplitude float64) noiseSource {
	if amplitude <= 0 {
		return noiseSource{}
	}
	return noiseSource{
		rng:   rand.New(rand.NewSource(seed)),
		scale: amplitude * math.MaxInt32,
	}
}

func (n noiseSource) addTo(a []int32) {
	if n.rng == nil {
		return
	}
	for i := range a {
		a[i] = clampi32(int64(a[i]) + int64((2*n.rng.Float64()-1)*n.scale))
	}
}

func clampi32(v int64) int32 {
	return int32(max(min(v, math.MaxInt32), math.MinInt32))
}

func cleari32(a []int32) {
	for i := range a {
		a[i] = 0
	}
}

func alloci32(n int) []int32 {
	return make([]int32, n)
}

// monoChannels picks one input and one output channel of a multichannel block.
func monoChannels(in, out [][]int32, inCh, outCh int) ([]int32, []int32, error) {
	if inCh < 0 || inCh >= len(in) {
		return nil, nil, fmt.Errorf("%w: input %d, device has %d", ErrNoChannel, inCh, len(in))
	}
	if outCh < 0 || outCh >= len(out) {
		return nil, nil, fmt.Errorf("%w: output %d, device has %d", ErrNoChannel, outCh, len(out))
	}
	return in[inCh], out[outCh], nil
}
