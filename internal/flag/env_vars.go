package flag

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/chanced/caps"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// EnvVarsPrefix is prepended to global env var names, e.g. "CLUSTERTIME_".
var EnvVarsPrefix string

var (
	definedEnvVarRegexesMu sync.Mutex
	definedEnvVarRegexes   = make(map[RegexExpr]*regexp.Regexp)

	_ GetEnvVarRegexesInterface = GetLocalEnvVarRegexes
	_ GetEnvVarRegexesInterface = GetGlobalEnvVarRegexes
	_ GetEnvVarRegexesInterface = GetGlobalAndLocalEnvVarRegexes
)

// RegexExpr is an env var name pattern and its human-readable form shown in
// help.
type RegexExpr struct {
	Expr  string
	Human string
}

func NewRegexExpr(expr, human string) *RegexExpr {
	return &RegexExpr{
		Expr:  expr,
		Human: human,
	}
}

type GetEnvVarRegexesInterface func(cmd *cobra.Command, flagName string) ([]*RegexExpr, error)

// GetLocalEnvVarRegexes binds a flag to $<COMMAND_PATH>_<FLAG>.
func GetLocalEnvVarRegexes(cmd *cobra.Command, flagName string) ([]*RegexExpr, error) {
	name := caps.ToScreamingSnake(fmt.Sprintf("%s_%s", cmd.CommandPath(), flagName))

	return []*RegexExpr{NewRegexExpr("^"+name+"$", "$"+name)}, nil
}

// GetGlobalEnvVarRegexes binds a flag to $<PREFIX><FLAG>.
func GetGlobalEnvVarRegexes(cmd *cobra.Command, flagName string) ([]*RegexExpr, error) {
	name := caps.ToScreamingSnake(EnvVarsPrefix + flagName)

	return []*RegexExpr{NewRegexExpr("^"+name+"$", "$"+name)}, nil
}

// GetGlobalAndLocalEnvVarRegexes binds a flag to both names. The local one
// takes precedence.
func GetGlobalAndLocalEnvVarRegexes(cmd *cobra.Command, flagName string) ([]*RegexExpr, error) {
	global, err := GetGlobalEnvVarRegexes(cmd, flagName)
	if err != nil {
		return nil, fmt.Errorf("get global env var regexes: %w", err)
	}

	local, err := GetLocalEnvVarRegexes(cmd, flagName)
	if err != nil {
		return nil, fmt.Errorf("get local env var regexes: %w", err)
	}

	return append(global, local...), nil
}

func defineEnvVarRegexes(exprs []*RegexExpr) ([]*regexp.Regexp, error) {
	definedEnvVarRegexesMu.Lock()
	defer definedEnvVarRegexesMu.Unlock()

	var regexes []*regexp.Regexp
	for _, expr := range exprs {
		regex, found := definedEnvVarRegexes[*expr]
		if !found {
			var err error
			regex, err = regexp.Compile(expr.Expr)
			if err != nil {
				return nil, fmt.Errorf("compile regex %q: %w", expr.Expr, err)
			}

			definedEnvVarRegexes[*expr] = regex
		}

		regexes = append(regexes, regex)
	}

	return regexes, nil
}

// FindUndefinedFlagEnvVarsInEnviron returns prefixed env vars that no flag
// accepts, usually typos.
func FindUndefinedFlagEnvVarsInEnviron() []string {
	if EnvVarsPrefix == "" {
		return nil
	}

	definedEnvVarRegexesMu.Lock()
	regexes := lo.Values(definedEnvVarRegexes)
	definedEnvVarRegexesMu.Unlock()

	names := lo.FilterMap(os.Environ(), func(keyValue string, _ int) (string, bool) {
		name, _, _ := strings.Cut(keyValue, "=")
		return name, strings.HasPrefix(name, EnvVarsPrefix)
	})

	return lo.Filter(names, func(name string, _ int) bool {
		return !lo.SomeBy(regexes, func(regex *regexp.Regexp) bool {
			return regex.MatchString(name)
		})
	})
}
