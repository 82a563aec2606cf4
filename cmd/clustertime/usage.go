package main

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/acmload/clustertime/internal/flag"
)

const helpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

const usageTemplate = `Usage:
{{- if .Runnable}}
  {{.UseLine}}
{{- end}}

{{- if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]
{{- end}}

{{- if .HasExample}}

Examples:
{{.Example}}
{{- end}}

{{- if .HasAvailableSubCommands}}
  {{- range $group := .Groups}}

{{.Title}}
    {{- $groupedCmds := list }}
    {{- range $cmd := $.Commands}}
      {{- if (and (eq $cmd.GroupID $group.ID) $cmd.IsAvailableCommand)}}
        {{- $groupedCmds = append $groupedCmds $cmd}}
      {{- end}}
    {{- end}}

    {{- range cmdsShorts $groupedCmds}}
  {{.}}
    {{- end }}
  {{- end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}
  {{- range flagGroups .LocalFlags}}

{{.Group.Title}}
{{.Flags.FlagUsages | trimTrailingWhitespaces}}
  {{- end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
{{- end}}
`

var templateFuncs = template.FuncMap{
	"append":     sprig.TxtFuncMap()["append"],
	"cmdsShorts": cmdsShorts,
	"eq":         cobra.Eq,
	"flagGroups": flagGroups,
	"list":       sprig.TxtFuncMap()["list"],
	"trimTrailingWhitespaces": func(s string) string {
		return strings.TrimRightFunc(s, unicode.IsSpace)
	},
}

func usageFunc(c *cobra.Command) error {
	t := template.New("top")
	t.Funcs(templateFuncs)

	if _, err := t.Parse(c.UsageTemplate()); err != nil {
		c.PrintErrln(err)
		return err
	}

	if err := t.Execute(c.OutOrStderr(), c); err != nil {
		c.PrintErrln(err)
		return err
	}

	return nil
}

func flagGroups(flags *pflag.FlagSet) []*flag.GroupedFlags {
	return flag.GroupFlags(flags)
}

func cmdsShorts(commands []interface{}) []string {
	var infos []*cmdInfo
	for _, c := range commands {
		cmd, ok := c.(*cobra.Command)
		if !ok {
			panic(fmt.Sprintf("unexpected type %T", c))
		}

		infos = append(infos, cmdInfosRecurse(cmd)...)
	}

	padding := longestCommandPathLength(infos) + 3

	var result []string
	for _, info := range infos {
		result = append(result, fmt.Sprintf("%-*s%s", padding, info.commandPath, info.short))
	}

	return result
}

func cmdInfosRecurse(cmd *cobra.Command) []*cmdInfo {
	if !cmd.HasAvailableSubCommands() {
		return []*cmdInfo{
			{
				commandPath: cmd.CommandPath(),
				short:       cmd.Short,
			},
		}
	}

	var infos []*cmdInfo
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}

		infos = append(infos, cmdInfosRecurse(c)...)
	}

	return infos
}

func longestCommandPathLength(infos []*cmdInfo) int {
	var longest int
	for _, info := range infos {
		if len(info.commandPath) > longest {
			longest = len(info.commandPath)
		}
	}

	return longest
}

type cmdInfo struct {
	commandPath string
	short       string
}
