package audio

import (
	"log"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Processor sonifies a particle field. It observes frames on the
// simulation goroutine and synthesizes on the portaudio callback, so the
// values crossing between the two sit behind mu.
type Processor struct {
	Stream *portaudio.Stream

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	mu           sync.Mutex
	totalEnergy  float64
	energySmooth float64
	pan          float64
	pops         int

	popEnv   float64
	popPhase float64

	Active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		pan:       0.5,
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		log.Printf("audio: init: %v", err)
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		log.Printf("audio: open stream: %v", err)
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		log.Printf("audio: start stream: %v", err)
		stream.Close()
		portaudio.Terminate()
		return err
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	portaudio.Terminate()
	a.Active = false
}

// OnFrame feeds one frame into the synth: field energy opens the filter,
// the pointer pans the pad and every respawn queues a short pop.
func (a *Processor) OnFrame(f sim.Frame) {
	pan := 0.5
	if !f.Pointer.IsUnset() && f.Bounds.Width > 0 {
		pan = math.Max(0, math.Min(f.Pointer.X/f.Bounds.Width, 1))
	}

	a.mu.Lock()
	a.totalEnergy = metrics.FieldEnergy(f)
	a.pan = pan
	a.pops += f.Respawned
	a.mu.Unlock()
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// Cutoff maps smoothed field energy to the pad's filter cutoff in Hz.
func Cutoff(energy float64) float64 {
	return 300.0 + math.Min(energy*2.0, 900.0)
}

// Energy returns the field energy of the last observed frame.
func (a *Processor) Energy() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalEnergy
}

// FilterCutoff is the cutoff the pad is currently filtered at.
func (a *Processor) FilterCutoff() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Cutoff(a.energySmooth)
}

func (a *Processor) ProcessAudio(in []float32, out [][]float32) {
	// Gm7 add9: G2, Bb2, D3, F3, A3
	freqs := []float64{98.00, 116.54, 146.83, 174.61, 220.00}

	a.mu.Lock()
	a.energySmooth = a.energySmooth*0.995 + a.totalEnergy*0.005
	cutoff := Cutoff(a.energySmooth)
	pan := a.pan
	if a.pops > 0 {
		a.popEnv = math.Min(a.popEnv+0.5*float64(a.pops), 1.0)
		a.pops = 0
	}
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	gainL, gainR := math.Cos(pan*math.Pi/2), math.Sin(pan*math.Pi/2)

	vol := 0.252

	for i := 0; i < len(out[0]); i++ {
		sampleL := 0.0
		sampleR := 0.0

		for j, f := range freqs {
			oscL := triangle(a.Time * (f * 0.999))
			oscR := triangle(a.Time * (f * 1.001))

			g := 1.0 / float64(len(freqs))

			// breathing
			lfo := math.Sin(a.Time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, a.FilterState[0] = lpf(sampleL, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(sampleR, cutoff, dt, a.FilterState[1])
		outL *= gainL * math.Sqrt2
		outR *= gainR * math.Sqrt2

		if a.popEnv > 1e-4 {
			pop := math.Sin(2*math.Pi*a.popPhase) * a.popEnv * 0.3
			outL += pop
			outR += pop
			a.popPhase += 660.0 * dt
			a.popEnv *= 0.9985
		}

		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		// ping-pong feedback
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.7
		a.DelayLine[1][a.DelayHead] = mixR * 0.7

		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.Time += dt
	}
}
