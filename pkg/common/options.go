package common

import (
	"path/filepath"

	"github.com/samber/lo"
)

type KubeConnectionOptions struct {
	KubeAPIServerAddress  string
	KubeBearerTokenData   string
	KubeBurstLimit        int
	KubeConfigBase64      string
	KubeConfigPaths       []string
	KubeContextCurrent    string
	KubeQPSLimit          int
	KubeRequestTimeout    string
	KubeSkipTLSVerify     bool
	KubeTLSCAPath         string
	KubeTLSServerName     string
	KubeImpersonateUser   string
	KubeImpersonateGroups []string
}

func (opts *KubeConnectionOptions) ApplyDefaults(homeDir string) {
	if len(opts.KubeConfigPaths) > 0 {
		var splitPaths []string
		for _, path := range opts.KubeConfigPaths {
			splitPaths = append(splitPaths, filepath.SplitList(path)...)
		}

		opts.KubeConfigPaths = lo.Compact(splitPaths)
	}

	if opts.KubeConfigBase64 == "" && len(lo.Compact(opts.KubeConfigPaths)) == 0 {
		opts.KubeConfigPaths = []string{filepath.Join(homeDir, ".kube", "config")}
	}

	if opts.KubeQPSLimit <= 0 {
		opts.KubeQPSLimit = DefaultQPSLimit
	}

	if opts.KubeBurstLimit <= 0 {
		opts.KubeBurstLimit = DefaultBurstLimit
	}
}
