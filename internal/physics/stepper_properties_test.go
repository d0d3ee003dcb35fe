package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/physics"
)

var _ = Describe("Stepper", func() {
	var (
		gen     *field.Generator
		stepper *physics.Stepper
		bounds  field.Bounds
	)

	BeforeEach(func() {
		gen = field.NewGenerator(2024, field.DefaultSpawnRange())
		stepper = physics.NewStepper(physics.DefaultTuning(), gen)
		bounds = field.Bounds{Width: 1280, Height: 720}
	})

	Context("with a pool of thirty particles", func() {
		var particles []field.Particle

		BeforeEach(func() {
			particles = make([]field.Particle, 30)
			for i := range particles {
				particles[i] = gen.Generate(bounds)
			}
		})

		It("keeps the pool size for any number of frames", func() {
			ptr := field.Point{X: 640, Y: 360}
			for k := 0; k < 500; k++ {
				particles, _ = stepper.Step(particles, ptr, bounds)
				Expect(particles).To(HaveLen(30))
				ptr.X = math.Mod(ptr.X+37, bounds.Width)
				ptr.Y = math.Mod(ptr.Y+23, bounds.Height)
			}
		})

		It("never lets two live particles share an id", func() {
			ptr := field.Point{X: 10, Y: 10}
			for k := 0; k < 300; k++ {
				particles, _ = stepper.Step(particles, ptr, bounds)
				seen := map[uint64]bool{}
				for _, p := range particles {
					Expect(seen).NotTo(HaveKey(p.ID))
					seen[p.ID] = true
				}
				ptr.X = math.Mod(ptr.X+53, bounds.Width)
				ptr.Y = math.Mod(ptr.Y+41, bounds.Height)
			}
		})

		It("keeps size and opacity of surviving particles", func() {
			sizes := map[uint64]float64{}
			for _, p := range particles {
				sizes[p.ID] = p.Size
			}
			for k := 0; k < 200; k++ {
				particles, _ = stepper.Step(particles, field.Point{X: 300, Y: 300}, bounds)
				for _, p := range particles {
					Expect(p.Opacity).To(Equal(1.0))
					if s, ok := sizes[p.ID]; ok {
						Expect(p.Size).To(Equal(s))
					} else {
						sizes[p.ID] = p.Size
					}
				}
			}
		})
	})

	Context("while the pointer is unset", func() {
		It("only damps the velocity", func() {
			p := field.Particle{ID: 1, X: 640, Y: 360, VX: 0.2, VY: -0.15, Size: 50, Opacity: 1}
			for k := 0; k < 100; k++ {
				next, destroyed := stepper.Advance(p, field.Unset, bounds)
				Expect(destroyed).To(BeFalse())
				Expect(next.VX).To(Equal(p.VX * 0.98))
				Expect(next.VY).To(Equal(p.VY * 0.98))
				Expect(next.X).To(Equal(p.X + next.VX))
				Expect(next.Y).To(Equal(p.Y + next.VY))
				p = next
			}
		})
	})

	// Monotonic decay holds only where no attraction applies. With the
	// pointer held beyond the dead zone every frame adds a pull toward it,
	// so speed is bounded rather than monotonic; see the far-pointer case.
	Context("when the pointer is held inside the dead zone", func() {
		It("decays the speed monotonically toward zero", func() {
			p := field.Particle{ID: 1, X: 640, Y: 360, VX: 0.25, VY: 0.25, Size: 20, Opacity: 1}
			ptr := field.Point{X: 690, Y: 360}
			prev := p.Speed()
			for k := 0; k < 400; k++ {
				next, destroyed := stepper.Advance(p, ptr, bounds)
				Expect(destroyed).To(BeFalse())
				Expect(next.Speed()).To(BeNumerically("<", prev))
				Expect(next.Speed()).To(BeNumerically(">=", 0))
				prev = next.Speed()
				p = next
			}
			Expect(prev).To(BeNumerically("<", 0.25*math.Sqrt2*0.01))
		})
	})

	Context("when the pointer is held far away", func() {
		It("bounds the speed by the damped terminal velocity", func() {
			t := physics.DefaultTuning()
			terminal := t.Gain / t.ForceFloor * t.Damping / (1 - t.Damping)

			p := field.Particle{ID: 1, X: 100, Y: 100, Size: 20, Opacity: 1}
			ptr := field.Point{X: 1200, Y: 700}
			for k := 0; k < 300; k++ {
				p, _ = stepper.Advance(p, ptr, bounds)
				Expect(p.Speed()).To(BeNumerically("<=", terminal+1e-9))
			}
		})
	})

	It("replaces a touched particle with a newer id and skips its motion", func() {
		p := field.Particle{ID: gen.NextID(), X: 50, Y: 50, Size: 40, Opacity: 1}
		next, destroyed := stepper.Advance(p, field.Point{X: 55, Y: 50}, bounds)
		Expect(destroyed).To(BeTrue())
		Expect(next.ID).To(BeNumerically(">", p.ID))
		Expect(next.X).To(BeNumerically(">=", 0))
		Expect(next.X).To(BeNumerically("<", bounds.Width))
	})
})
