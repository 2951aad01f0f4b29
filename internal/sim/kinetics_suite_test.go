package sim

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynfba/internal/model"
)

func TestKinetics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Kinetics Suite")
}

// inhibitionModel builds a network with two independent product
// exchanges carrying inhibition parameters.
func inhibitionModel() *model.Model {
	m := &model.Model{
		ID: "inhibition",
		Metabolites: map[string]*model.Metabolite{
			"ac_e":  {ID: "ac_e", Compartment: "e"},
			"lac_e": {ID: "lac_e", Compartment: "e"},
			"ac_c":  {ID: "ac_c", Compartment: "c"},
		},
		Reactions: map[string]*model.Reaction{
			"EX_ac_e": {ID: "EX_ac_e", LowerBound: 0, UpperBound: 1000,
				Metabolites: map[string]float64{"ac_e": -1}},
			"EX_lac_e": {ID: "EX_lac_e", LowerBound: 0, UpperBound: 1000,
				Metabolites: map[string]float64{"lac_e": -1}},
			"ACt": {ID: "ACt", LowerBound: -1000, UpperBound: 1000,
				Metabolites: map[string]float64{"ac_c": -1, "ac_e": 1}},
		},
	}
	return m
}

var _ = Describe("inhibition factor", func() {
	var m *model.Model

	BeforeEach(func() {
		m = inhibitionModel()
	})

	It("is 1.0 with no inhibition parameters", func() {
		f := inhibitionFactor(m, Concentrations{"ac_e": 50}, nil)
		Expect(f).To(Equal(1.0))
	})

	It("is 1.0 when inhibitor concentrations are zero", func() {
		kn := map[string]float64{"EX_ac_e": 5}
		f := inhibitionFactor(m, Concentrations{"ac_e": 0}, kn)
		Expect(f).To(Equal(1.0))
	})

	It("applies Kn/(Kn+C) for a single inhibitor", func() {
		kn := map[string]float64{"EX_ac_e": 5}
		f := inhibitionFactor(m, Concentrations{"ac_e": 10}, kn)
		Expect(f).To(BeNumerically("~", 5.0/15.0, 1e-12))
	})

	It("compounds disjoint inhibitors multiplicatively", func() {
		kn := map[string]float64{"EX_ac_e": 5, "EX_lac_e": 2}
		conc := Concentrations{"ac_e": 10, "lac_e": 3}
		f := inhibitionFactor(m, conc, kn)
		Expect(f).To(BeNumerically("~", (5.0/15.0)*(2.0/5.0), 1e-12))
	})

	It("is monotonically non-increasing in inhibitor concentration", func() {
		kn := map[string]float64{"EX_ac_e": 5}
		prev := 1.0
		for _, c := range []float64{0, 0.1, 1, 10, 100} {
			f := inhibitionFactor(m, Concentrations{"ac_e": c}, kn)
			Expect(f).To(BeNumerically("<=", prev))
			Expect(f).To(BeNumerically(">", 0))
			Expect(f).To(BeNumerically("<=", 1))
			prev = f
		}
	})

	It("treats negative concentration as zero", func() {
		kn := map[string]float64{"EX_ac_e": 5}
		f := inhibitionFactor(m, Concentrations{"ac_e": -4}, kn)
		Expect(f).To(Equal(1.0))
	})

	It("ignores untracked and non-extracellular metabolites", func() {
		// ACt touches ac_c (cytosolic) and ac_e; only ac_e qualifies,
		// and only when tracked.
		kn := map[string]float64{"ACt": 5}
		Expect(inhibitionFactor(m, Concentrations{}, kn)).To(Equal(1.0))
		f := inhibitionFactor(m, Concentrations{"ac_e": 5}, kn)
		Expect(f).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("escapes [0,1] under a negative Kn, which the step must reject", func() {
		kn := map[string]float64{"EX_ac_e": -5}
		f := inhibitionFactor(m, Concentrations{"ac_e": 10}, kn)
		Expect(f < 0 || f > 1).To(BeTrue())

		_, err := integrateBiomass(1.0, 0.5, f, 0.01)
		Expect(err).To(MatchError(ErrInhibitionRange))
	})
})

var _ = Describe("biomass integration", func() {
	It("grows exponentially in the Euler limit", func() {
		x, err := integrateBiomass(2.0, 0.5, 1.0, 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(BeNumerically("~", 2.0+0.5*2.0*0.01, 1e-15))
	})

	It("never shrinks while mu and inhibition are non-negative", func() {
		x := 1.0
		for i := 0; i < 1000; i++ {
			var err error
			x2, err := integrateBiomass(x, 0.3, 0.7, 0.005)
			Expect(err).NotTo(HaveOccurred())
			Expect(x2).To(BeNumerically(">=", x))
			x = x2
		}
	})

	It("rejects inhibition outside the unit interval", func() {
		_, err := integrateBiomass(1.0, 0.5, 1.5, 0.01)
		Expect(err).To(MatchError(ErrInhibitionRange))
		_, err = integrateBiomass(1.0, 0.5, -0.1, 0.01)
		Expect(err).To(MatchError(ErrInhibitionRange))
	})
})
