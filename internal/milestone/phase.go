package milestone

import "github.com/samber/lo"

type PhaseName string

const (
	PhaseInstall PhaseName = "aci_total"
	PhaseGap     PhaseName = "gap_total"
	PhaseUpgrade PhaseName = "upgrade_total"
	PhaseOverall PhaseName = "grand_total"
)

// Phase is a named span between two registered milestones.
type Phase struct {
	Name  PhaseName
	Label string
	Start Name
	End   Name
}

var phases = []Phase{
	{Name: PhaseInstall, Label: "ACI Total", Start: ACICreated, End: ACICompleted},
	{Name: PhaseGap, Label: "MC Gap Total", Start: ACICompleted, End: CGUCreated},
	{Name: PhaseUpgrade, Label: "CGU Total", Start: CGUCreated, End: CGUCompleted},
	{Name: PhaseOverall, Label: "Cluster Total", Start: ACICreated, End: CGUCompleted},
}

func Phases() []Phase {
	return lo.Map(phases, func(p Phase, _ int) Phase {
		return p
	})
}

func PhaseByName(name PhaseName) (Phase, bool) {
	return lo.Find(phases, func(p Phase) bool {
		return p.Name == name
	})
}
