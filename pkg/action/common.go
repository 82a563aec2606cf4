package action

import (
	"sync"

	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

const (
	DefaultClusterTimeOutputFormat = common.OutputFormatTable
	DefaultClusterTimeLogLevel     = log.InfoLevel
	DefaultVersionOutputFormat     = common.OutputFormatYAML
	DefaultVersionLogLevel         = log.ErrorLevel
	DefaultLogColorMode            = log.LogColorModeAuto
)

// Actions mutate process-wide logging and color settings, so only one runs at
// a time.
var actionLock sync.Mutex
