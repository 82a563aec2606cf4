package milestone

import (
	"fmt"

	"github.com/samber/lo"
)

type Name string

const (
	ACICreated            Name = "aci_created"
	ACIValidationsPassing Name = "aci_validations_passing"
	ACIClusterInstalling  Name = "aci_cluster_installing"
	ACIClusterFinalized   Name = "aci_cluster_finalized"
	ACIClusterInstalled   Name = "aci_cluster_installed"
	ACICompleted          Name = "aci_completed"
	MCImported            Name = "mc_imported"
	MCJoined              Name = "mc_joined"
	CGUCreated            Name = "cgu_created"
	CGUStarted            Name = "cgu_started"
	CGUCompleted          Name = "cgu_completed"
)

// Source identifies the kind of record a milestone is read from.
type Source string

const (
	SourceInstallStatus Source = "install-status"
	SourceEventLog      Source = "event-log"
	SourceMembership    Source = "membership"
	SourceUpgradeRecord Source = "upgrade-record"
)

var Sources = []Source{SourceInstallStatus, SourceEventLog, SourceMembership, SourceUpgradeRecord}

type entry struct {
	name   Name
	source Source
}

var catalog = []entry{
	{ACICreated, SourceInstallStatus},
	{ACIValidationsPassing, SourceInstallStatus},
	{ACIClusterInstalling, SourceEventLog},
	{ACIClusterFinalized, SourceEventLog},
	{ACIClusterInstalled, SourceEventLog},
	{ACICompleted, SourceInstallStatus},
	{MCImported, SourceMembership},
	{MCJoined, SourceMembership},
	{CGUCreated, SourceUpgradeRecord},
	{CGUStarted, SourceUpgradeRecord},
	{CGUCompleted, SourceUpgradeRecord},
}

// Order returns milestone names in the order steps are computed. A fresh
// slice is returned on every call.
func Order() []Name {
	return lo.Map(catalog, func(e entry, _ int) Name {
		return e.name
	})
}

func Owner(name Name) (Source, bool) {
	e, found := lo.Find(catalog, func(e entry) bool {
		return e.name == name
	})

	return e.source, found
}

func OwnedBy(source Source) []Name {
	return lo.FilterMap(catalog, func(e entry, _ int) (Name, bool) {
		return e.name, e.source == source
	})
}

func Index(name Name) int {
	return lo.IndexOf(Order(), name)
}

// Checks that the catalog is self-consistent: unique names, every name owned by
// a known source and phase endpoints registered and ordered.
func Validate() error {
	names := Order()

	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return fmt.Errorf("duplicate milestone names: %v", dups)
	}

	for _, e := range catalog {
		if !lo.Contains(Sources, e.source) {
			return fmt.Errorf("milestone %q owned by unknown source %q", e.name, e.source)
		}
	}

	for _, phase := range Phases() {
		startI := lo.IndexOf(names, phase.Start)
		if startI < 0 {
			return fmt.Errorf("phase %q starts at unregistered milestone %q", phase.Name, phase.Start)
		}

		endI := lo.IndexOf(names, phase.End)
		if endI < 0 {
			return fmt.Errorf("phase %q ends at unregistered milestone %q", phase.Name, phase.End)
		}

		if startI >= endI {
			return fmt.Errorf("phase %q starts at %q which does not precede %q", phase.Name, phase.Start, phase.End)
		}
	}

	if dups := lo.FindDuplicates(lo.Map(Phases(), func(p Phase, _ int) PhaseName { return p.Name })); len(dups) > 0 {
		return fmt.Errorf("duplicate phase names: %v", dups)
	}

	return nil
}
