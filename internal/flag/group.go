package flag

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

const (
	GroupIDAnnotationName       = "group-id"
	GroupTitleAnnotationName    = "group-title"
	GroupPriorityAnnotationName = "group-priority"
)

func NewGroup(id, title string, priority int) *Group {
	return &Group{
		ID:       id,
		Title:    title,
		Priority: priority,
	}
}

type Group struct {
	ID       string
	Title    string
	Priority int
}

// GroupedFlags is a flag group with its flags, for rendering usage.
type GroupedFlags struct {
	Group *Group
	Flags *pflag.FlagSet
}

// GroupFlags splits flags by their group annotations. Groups are sorted by
// descending priority. Ungrouped flags end up in a trailing "Other" group.
func GroupFlags(flags *pflag.FlagSet) []*GroupedFlags {
	groups := map[string]*GroupedFlags{}

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		group := groupOf(f)

		grouped, found := groups[group.ID]
		if !found {
			grouped = &GroupedFlags{
				Group: group,
				Flags: pflag.NewFlagSet(group.ID, pflag.ContinueOnError),
			}
			groups[group.ID] = grouped
		}

		grouped.Flags.AddFlag(f)
	})

	result := lo.Values(groups)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Group.Priority != result[j].Group.Priority {
			return result[i].Group.Priority > result[j].Group.Priority
		}

		return result[i].Group.ID < result[j].Group.ID
	})

	return result
}

func groupOf(f *pflag.Flag) *Group {
	ids := f.Annotations[GroupIDAnnotationName]
	if len(ids) == 0 {
		return NewGroup("other", "Other options", -1)
	}

	title := lo.FirstOrEmpty(f.Annotations[GroupTitleAnnotationName])
	priority, _ := strconv.Atoi(lo.FirstOrEmpty(f.Annotations[GroupPriorityAnnotationName]))

	return NewGroup(ids[0], title, priority)
}
