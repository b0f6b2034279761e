package options

import (
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/fleetconsole/internal/console"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/options"
)

// ConsoleOptions is everything fleetctl can be configured with, from flags,
// FLEETCTL_* environment variables or a config file.
type ConsoleOptions struct {
	APIOptions  *options.APIOptions  `json:"api" mapstructure:"api"`
	HttpOptions *options.HttpOptions `json:"http" mapstructure:"http"`
	S3Options   *options.S3Options   `json:"s3" mapstructure:"s3"`
	Log         *log.Options         `json:"log" mapstructure:"log"`

	// ConfigFile is read before flags are applied. Only set from the command line.
	ConfigFile string `json:"-" mapstructure:"-"`
}

func NewConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		APIOptions:  options.NewAPIOptions(),
		HttpOptions: options.NewHttpOptions(),
		S3Options:   options.NewS3Options(),
		Log:         log.NewOptions(),
	}
}

func (o *ConsoleOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.APIOptions.AddFlags(fss.FlagSet("api"))
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.Log.AddFlags(fss.FlagSet("log"))
	o.addGlobalFlags(fss.FlagSet("global"))
	return fss
}

func (o *ConsoleOptions) addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile, "Read configuration from this YAML, JSON or TOML file.")
}

func (o *ConsoleOptions) Complete() error {
	return nil
}

func (o *ConsoleOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.APIOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ConsoleOptions) Config() (*console.Config, error) {
	return &console.Config{
		APIOptions:  o.APIOptions,
		HttpOptions: o.HttpOptions,
		S3Options:   o.S3Options,
	}, nil
}
