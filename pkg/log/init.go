package log

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
	"github.com/hofstadter-io/cinful"
	"github.com/samber/lo"
	"github.com/xo/terminfo"
	klogv2 "k8s.io/klog/v2"

	"github.com/werf/logboek"
)

var Default Logger = NewLogboekLogger()

type SetupLoggingOptions struct {
	ColorMode      string
	LogIsParseable bool
}

// Sets up logging levels, colors and silences client-go logging unless
// debugging.
func SetupLogging(ctx context.Context, logLevel Level, opts SetupLoggingOptions) context.Context {
	if val := ctx.Value(LogboekLoggerCtxKeyName); val == nil {
		ctx = logboek.NewContext(ctx, logboek.DefaultLogger())
	}

	Default.SetLevel(ctx, logLevel)

	spew.Config.DisablePointerAddresses = true
	spew.Config.DisableCapacities = true

	switch logLevel {
	case SilentLevel, ErrorLevel, WarningLevel, InfoLevel:
		stdlog.SetOutput(io.Discard)

		klogv2.SetOutput(io.Discard)
		// From: https://github.com/kubernetes/klog/issues/87#issuecomment-1671820147
		klogFlags := &flag.FlagSet{}
		klogv2.InitFlags(klogFlags)
		lo.Must0(klogFlags.Set("logtostderr", "false"))
		lo.Must0(klogFlags.Set("alsologtostderr", "false"))
		lo.Must0(klogFlags.Set("stderrthreshold", "4"))
	case DebugLevel, TraceLevel:
		stdlog.SetOutput(os.Stdout)

		klogv2.SetOutputBySeverity("FATAL", logboek.Context(ctx).ErrStream())
		klogv2.SetOutputBySeverity("ERROR", logboek.Context(ctx).ErrStream())
		klogv2.SetOutputBySeverity("WARNING", logboek.Context(ctx).ErrStream())
		klogv2.SetOutputBySeverity("INFO", logboek.Context(ctx).OutStream())
	default:
		panic(fmt.Sprintf("unknown log level %q", logLevel))
	}

	colorLevel := getColorLevel(opts.ColorMode, opts.LogIsParseable)

	color.Enable = colorLevel != terminfo.ColorLevelNone
	color.ForceSetColorLevel(colorLevel)

	return ctx
}

func getColorLevel(mode string, logIsParseable bool) terminfo.ColorLevel {
	switch mode {
	case LogColorModeOff:
		return terminfo.ColorLevelNone
	case LogColorModeOn:
		if colorLevel := color.DetectColorLevel(); colorLevel == terminfo.ColorLevelNone {
			return terminfo.ColorLevelHundreds
		} else {
			return colorLevel
		}
	}

	if ciInfo := cinful.Info(); ciInfo != nil {
		switch ciInfo.Constant {
		case "GITLAB", "GITHUB_ACTIONS":
			if logIsParseable {
				return terminfo.ColorLevelNone
			}

			return terminfo.ColorLevelHundreds
		default:
			if logIsParseable {
				return terminfo.ColorLevelNone
			}

			return color.DetectColorLevel()
		}
	}

	if piped, err := stdoutPiped(); err != nil || piped {
		return terminfo.ColorLevelNone
	}

	return color.DetectColorLevel()
}

func stdoutPiped() (bool, error) {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false, fmt.Errorf("get stdout fileinfo: %w", err)
	}

	return (fileInfo.Mode() & os.ModeCharDevice) == 0, nil
}
