package flag

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type Type string

const (
	TypeNone Type = ""
	TypeDir  Type = "dir"
	TypeFile Type = "file"
)

type AddOptions struct {
	GetEnvVarRegexesFunc GetEnvVarRegexesInterface
	Group                *Group
	Hidden               bool
	Required             bool
	ShortName            string
	Type                 Type
}

// Add defines a flag on cmd and fills dest from the environment right away.
// Command line values set later take precedence over env vars.
func Add[T any](cmd *cobra.Command, dest *T, name string, defaultValue T, help string, opts AddOptions) error {
	if opts.GetEnvVarRegexesFunc == nil {
		opts.GetEnvVarRegexesFunc = GetLocalEnvVarRegexes
	}

	envVarRegexExprs, err := opts.GetEnvVarRegexesFunc(cmd, name)
	if err != nil {
		return fmt.Errorf("get env var regexes: %w", err)
	}

	if err := addFlag(cmd, dest, name, opts.ShortName, defaultValue, buildHelp(help, envVarRegexExprs)); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := processEnvVars(cmd, envVarRegexExprs, name, dest); err != nil {
		return fmt.Errorf("process env vars: %w", err)
	}

	if opts.Hidden {
		if err := cmd.Flags().MarkHidden(name); err != nil {
			return fmt.Errorf("mark flag as hidden: %w", err)
		}
	}

	if opts.Required {
		if err := cmd.MarkFlagRequired(name); err != nil {
			return fmt.Errorf("mark flag as required: %w", err)
		}
	}

	switch opts.Type {
	case TypeDir:
		if err := cmd.MarkFlagDirname(name); err != nil {
			return fmt.Errorf("mark flag as a directory: %w", err)
		}
	case TypeFile:
		if err := cmd.MarkFlagFilename(name); err != nil {
			return fmt.Errorf("mark flag as a filename: %w", err)
		}
	}

	if opts.Group != nil {
		if err := saveFlagGroupMetadata(cmd, name, opts.Group); err != nil {
			return fmt.Errorf("save flag group metadata: %w", err)
		}
	}

	return nil
}

func buildHelp(help string, envVarRegexes []*RegexExpr) string {
	if !strings.HasSuffix(help, ".") {
		help += "."
	}

	human := lo.Map(envVarRegexes, func(expr *RegexExpr, _ int) string {
		return expr.Human
	})

	switch len(human) {
	case 0:
		return help
	case 1:
		return fmt.Sprintf("%s Var: %s", help, human[0])
	default:
		return fmt.Sprintf("%s Vars: %s", help, strings.Join(human, ", "))
	}
}

func addFlag[T any](cmd *cobra.Command, dest *T, name, shortName string, defaultValue T, help string) error {
	switch dst := any(dest).(type) {
	case *bool:
		cmd.Flags().BoolVarP(dst, name, shortName, any(defaultValue).(bool), help)
	case *int:
		cmd.Flags().IntVarP(dst, name, shortName, any(defaultValue).(int), help)
	case *string:
		cmd.Flags().StringVarP(dst, name, shortName, any(defaultValue).(string), help)
	case *[]string:
		cmd.Flags().StringSliceVarP(dst, name, shortName, any(defaultValue).([]string), help)
	case *time.Duration:
		cmd.Flags().DurationVarP(dst, name, shortName, any(defaultValue).(time.Duration), help)
	default:
		return fmt.Errorf("unsupported type %T", dst)
	}

	return nil
}

// Regexes are checked in reverse, so the last one returned by
// GetEnvVarRegexesFunc wins for scalars. Slices collect values from every
// matching var.
func processEnvVars[T any](cmd *cobra.Command, envVarRegexExprs []*RegexExpr, flagName string, dest *T) error {
	regexes, err := defineEnvVarRegexes(envVarRegexExprs)
	if err != nil {
		return fmt.Errorf("define env var regexes: %w", err)
	}

	regexes = lo.Reverse(regexes)

	environ := os.Environ()
	sort.Strings(environ)

	matching := func(regex *regexp.Regexp) []lo.Tuple2[string, string] {
		return lo.FilterMap(environ, func(keyValue string, _ int) (lo.Tuple2[string, string], bool) {
			key, val, _ := strings.Cut(keyValue, "=")
			return lo.T2(key, val), val != "" && regex.MatchString(key)
		})
	}

	switch any(dest).(type) {
	case *[]string:
		for _, regex := range regexes {
			for _, env := range matching(regex) {
				parts, err := splitComma(env.B)
				if err != nil {
					return fmt.Errorf("split comma-separated environment variable %q with value %q: %w", env.A, env.B, err)
				}

				for _, part := range parts {
					if err := cmd.Flag(flagName).Value.(pflag.SliceValue).Append(part); err != nil {
						return fmt.Errorf("environment variable %q value %q is not valid: %w", env.A, env.B, err)
					}
				}
			}
		}
	default:
		for _, regex := range regexes {
			envs := matching(regex)
			if len(envs) == 0 {
				continue
			}

			if err := cmd.Flags().Set(flagName, envs[0].B); err != nil {
				return fmt.Errorf("environment variable %q value %q is not valid: %w", envs[0].A, envs[0].B, err)
			}

			break
		}
	}

	return nil
}

func saveFlagGroupMetadata(cmd *cobra.Command, flagName string, group *Group) error {
	if err := cmd.Flags().SetAnnotation(flagName, GroupIDAnnotationName, []string{group.ID}); err != nil {
		return fmt.Errorf("set group id annotation: %w", err)
	}

	if err := cmd.Flags().SetAnnotation(flagName, GroupTitleAnnotationName, []string{group.Title}); err != nil {
		return fmt.Errorf("set group title annotation: %w", err)
	}

	if err := cmd.Flags().SetAnnotation(flagName, GroupPriorityAnnotationName, []string{fmt.Sprintf("%d", group.Priority)}); err != nil {
		return fmt.Errorf("set group priority annotation: %w", err)
	}

	return nil
}

func splitComma(s string) ([]string, error) {
	parts, err := csv.NewReader(strings.NewReader(s)).Read()
	if err != nil {
		return nil, fmt.Errorf("read csv values: %w", err)
	}

	return parts, nil
}
