package flags

import (
	"github.com/reeflective/grammar/app"
	"github.com/reeflective/grammar/config"
)

type cliOpts struct {
	cfg    config.Config
	runner []app.Option

	// hideFlags keeps the grammar flags out of the cobra flag set,
	// for programs registering their own documentation flags.
	hideFlags bool
}

func defOpts() cliOpts {
	return cliOpts{cfg: config.Default()}
}

func (o cliOpts) apply(optFuncs ...OptFunc) cliOpts {
	for _, optFunc := range optFuncs {
		optFunc(&o)
	}

	return o
}

// OptFunc sets values in opts structure.
type OptFunc func(opt *cliOpts)

// WithConfig sets the configuration used to parse command lines.
func WithConfig(cfg config.Config) OptFunc {
	return func(opt *cliOpts) { opt.cfg = cfg }
}

// WithRunnerOptions passes options to the runner executing the grammar
// (logger, leftover policy, help mode). The command streams always are
// the cobra command ones.
func WithRunnerOptions(opts ...app.Option) OptFunc {
	return func(opt *cliOpts) { opt.runner = append(opt.runner, opts...) }
}

// WithoutFlags does not register the grammar flags on the cobra flag set.
func WithoutFlags() OptFunc {
	return func(opt *cliOpts) { opt.hideFlags = true }
}
