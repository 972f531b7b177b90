package cli

import (
	"io"

	"github.com/GIVandez/plot-twister/internal/config"
	"github.com/spf13/pflag"
)

const (
	configFlag    = "config"
	configEnvHint = config.EnvConfigPath
)

// ConfigPathFromArgs extracts --config from the raw command line. The
// database and services are wired from the config before the cobra tree
// runs, so this cannot wait for cobra's own parsing. Unknown flags and
// parse errors are ignored here; cobra reports them later.
func ConfigPathFromArgs(args []string) string {
	fs := pflag.NewFlagSet("plottwister", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	path := fs.String(configFlag, "", "")
	_ = fs.Parse(args)
	return *path
}

// optionalInt returns a pointer to the named int flag's value, or nil when
// the flag was not set on the command line.
func optionalInt(fs *pflag.FlagSet, name string) (*int, error) {
	if !fs.Changed(name) {
		return nil, nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// optionalString is optionalInt for string flags.
func optionalString(fs *pflag.FlagSet, name string) (*string, error) {
	if !fs.Changed(name) {
		return nil, nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
