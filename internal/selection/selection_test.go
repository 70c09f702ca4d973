package selection_test

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/picking"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/selection"
)

// scriptedPicker returns whatever body index is set, -1 for a miss.
type scriptedPicker struct{ next int }

func (p *scriptedPicker) PickAt(float64, float64) (picking.Hit, bool) {
	if p.next < 0 {
		return picking.Hit{Index: -1}, false
	}
	return picking.Hit{Index: p.next}, true
}

type recordingZoomer struct{ targets []mgl64.Vec3 }

func (z *recordingZoomer) ZoomTo(t mgl64.Vec3) { z.targets = append(z.targets, t) }

type flagToggle struct{ enabled bool }

func (f *flagToggle) SetEnabled(on bool) { f.enabled = on }

const (
	mercury = 1
	venus   = 2
	earth   = 3
)

var _ = Describe("Controller", func() {
	var (
		sc       *scene.Scene
		picker   *scriptedPicker
		zoomer   *recordingZoomer
		controls *flagToggle
		ctrl     *selection.Controller
		events   []selection.Event
	)

	BeforeEach(func() {
		sc = scene.Populate(bodies.All(), nil, 0, rand.New(rand.NewSource(7)))
		picker = &scriptedPicker{next: -1}
		zoomer = &recordingZoomer{}
		controls = &flagToggle{enabled: true}
		ctrl = selection.New(sc, picker, zoomer, controls, selection.Options{})
		events = nil
		ctrl.Subscribe(func(e selection.Event) { events = append(events, e) })
	})

	Describe("double-click", func() {
		It("ignores a miss while idle", func() {
			Expect(ctrl.DoubleClick(0, 0)).To(BeFalse())
			Expect(ctrl.State()).To(Equal(selection.Idle))
			Expect(events).To(BeEmpty())
			Expect(zoomer.targets).To(BeEmpty())
		})

		It("locks Venus and freezes it", func() {
			picker.next = venus
			Expect(ctrl.DoubleClick(0, 0)).To(BeTrue())

			Expect(ctrl.State()).To(Equal(selection.Locked))
			idx, ok := ctrl.Selected()
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(venus))

			Expect(sc.Nodes[venus].OrbitSpeed).To(BeZero())
			Expect(sc.Nodes[venus].SpinSpeed).To(BeZero())

			saved, ok := ctrl.Saved()
			Expect(ok).To(BeTrue())
			Expect(saved).To(Equal(selection.Speeds{Orbit: 0.015, Spin: 0.002}))

			Expect(controls.enabled).To(BeFalse())
			Expect(zoomer.targets).To(HaveLen(1))
			Expect(zoomer.targets[0]).To(Equal(sc.WorldPosition(venus)))

			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(selection.EventSelect))
			Expect(events[0].Info.Name).To(Equal("Venus"))
			Expect(events[0].Info.DiameterKm).To(Equal(12104.0))
		})

		It("keeps the lock on a miss", func() {
			picker.next = venus
			ctrl.DoubleClick(0, 0)
			picker.next = -1
			Expect(ctrl.DoubleClick(0.5, 0.5)).To(BeFalse())

			idx, _ := ctrl.Selected()
			Expect(idx).To(Equal(venus))
			Expect(sc.Nodes[venus].OrbitSpeed).To(BeZero())
		})

		It("restores the previous body when switching", func() {
			picker.next = venus
			ctrl.DoubleClick(0, 0)
			picker.next = earth
			ctrl.DoubleClick(0, 0)

			Expect(sc.Nodes[venus].OrbitSpeed).To(Equal(0.015))
			Expect(sc.Nodes[venus].SpinSpeed).To(Equal(0.002))
			Expect(sc.Nodes[earth].OrbitSpeed).To(BeZero())

			saved, _ := ctrl.Saved()
			Expect(saved).To(Equal(selection.Speeds{Orbit: 0.01, Spin: 0.02}))
			Expect(zoomer.targets).To(HaveLen(2))
		})

		It("re-selecting the same body does not save zeros", func() {
			picker.next = mercury
			ctrl.DoubleClick(0, 0)
			ctrl.DoubleClick(0, 0)
			ctrl.Close()

			Expect(sc.Nodes[mercury].OrbitSpeed).To(Equal(0.004))
			Expect(sc.Nodes[mercury].SpinSpeed).To(Equal(0.004))
		})
	})

	Describe("close", func() {
		It("restores exact speeds and unlocks", func() {
			sc.Nodes[venus].OrbitSpeed = 0.1234567891011
			sc.Nodes[venus].SpinSpeed = 0

			picker.next = venus
			ctrl.DoubleClick(0, 0)
			ctrl.Close()

			Expect(sc.Nodes[venus].OrbitSpeed).To(Equal(0.1234567891011))
			Expect(sc.Nodes[venus].SpinSpeed).To(Equal(0.0))
			Expect(ctrl.State()).To(Equal(selection.Idle))
			_, ok := ctrl.Saved()
			Expect(ok).To(BeFalse())
			Expect(controls.enabled).To(BeTrue())
			Expect(events[len(events)-1].Kind).To(Equal(selection.EventClose))
			Expect(events[len(events)-1].Body).To(Equal(venus))
		})

		It("is harmless while idle", func() {
			controls.enabled = false
			ctrl.Close()
			Expect(ctrl.State()).To(Equal(selection.Idle))
			Expect(controls.enabled).To(BeTrue())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Body).To(Equal(-1))
		})
	})

	Describe("go back", func() {
		It("emits without changing state", func() {
			picker.next = venus
			ctrl.DoubleClick(0, 0)
			ctrl.GoBack()
			Expect(ctrl.State()).To(Equal(selection.Locked))
			Expect(events[len(events)-1].Kind).To(Equal(selection.EventGoBack))
		})
	})

	Describe("hover", func() {
		It("scales and highlights the hovered body", func() {
			picker.next = earth
			ctrl.Hover(0, 0)

			Expect(sc.Nodes[earth].Scale).To(Equal(selection.DefaultHoverScale))
			Expect(sc.Highlight).NotTo(BeNil())
			Expect(sc.Highlight.Body).To(Equal(earth))
			idx, ok := ctrl.Hovered()
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(earth))
		})

		It("moves the decoration between bodies", func() {
			picker.next = earth
			ctrl.Hover(0, 0)
			picker.next = mercury
			ctrl.Hover(0, 0)

			Expect(sc.Nodes[earth].Scale).To(Equal(1.0))
			Expect(sc.Nodes[mercury].Scale).To(Equal(selection.DefaultHoverScale))
			Expect(sc.Highlight.Body).To(Equal(mercury))
		})

		It("clears everything on a miss", func() {
			picker.next = earth
			ctrl.Hover(0, 0)
			picker.next = -1
			ctrl.Hover(0, 0)

			Expect(sc.Nodes[earth].Scale).To(Equal(1.0))
			Expect(sc.Highlight).To(BeNil())
			_, ok := ctrl.Hovered()
			Expect(ok).To(BeFalse())
		})

		It("only emits when the target changes", func() {
			picker.next = earth
			ctrl.Hover(0, 0)
			ctrl.Hover(0, 0)
			ctrl.Hover(0, 0)
			Expect(events).To(HaveLen(1))
		})

		It("can hover the selected body", func() {
			picker.next = venus
			ctrl.DoubleClick(0, 0)
			ctrl.Hover(0, 0)

			sel, _ := ctrl.Selected()
			hov, _ := ctrl.Hovered()
			Expect(sel).To(Equal(hov))
			Expect(sc.Nodes[venus].OrbitSpeed).To(BeZero())
		})
	})

	It("never reports more than one selected or hovered body", func() {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 500; i++ {
			picker.next = rng.Intn(11) - 1
			if picker.next == 0 {
				picker.next = -1
			}
			switch rng.Intn(3) {
			case 0:
				ctrl.DoubleClick(0, 0)
			case 1:
				ctrl.Hover(0, 0)
			default:
				ctrl.Close()
			}

			frozen, scaled := 0, 0
			for j, n := range sc.Nodes {
				if sc.Bodies[j].Star {
					continue
				}
				if n.OrbitSpeed == 0 && n.SpinSpeed == 0 {
					frozen++
				}
				if n.Scale != 1 {
					scaled++
				}
			}
			Expect(frozen).To(BeNumerically("<=", 1))
			Expect(scaled).To(BeNumerically("<=", 1))
			if _, ok := ctrl.Hovered(); ok {
				Expect(sc.Highlight).NotTo(BeNil())
			} else {
				Expect(sc.Highlight).To(BeNil())
			}
		}
	})
})
