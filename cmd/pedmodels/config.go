package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pedmodels"
	"github.com/carbocation/pedmodels/inheritance"
	"github.com/carbocation/pfx"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is assembled from defaults, then an optional YAML file, then
// PEDMODELS_* environment variables, then command line flags. Later layers
// win.
type Config struct {
	VCF        string `yaml:"vcf" envconfig:"VCF"`
	PED        string `yaml:"ped" envconfig:"PED"`
	Family     string `yaml:"family" envconfig:"FAMILY"`
	Genes      string `yaml:"genes" envconfig:"GENES"`
	GeneLayout string `yaml:"gene_layout" envconfig:"GENE_LAYOUT"`
	Region     string `yaml:"region" envconfig:"REGION"`
	Regions    string `yaml:"regions" envconfig:"REGIONS"`
	Phased     bool   `yaml:"phased" envconfig:"PHASED"`
	Strict     bool   `yaml:"strict" envconfig:"STRICT"`
	XStrict    string `yaml:"x_strict" envconfig:"X_STRICT"`
	Workers    int    `yaml:"workers" envconfig:"WORKERS"`
	Out        string `yaml:"out" envconfig:"OUT"`

	ConfigPath string `yaml:"-" ignored:"true"`
}

func DefaultConfig() Config {
	return Config{
		GeneLayout: "BED",
		XStrict:    inheritance.XStrictRequireCalls.String(),
	}
}

// LoadConfig builds the configuration for the given command line arguments
// (without the program name).
func LoadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := DefaultConfig()

	if path := configPathFromArgs(args); path != "" {
		if err := cfg.LoadYAML(path); err != nil {
			return cfg, err
		}
	}

	if err := envconfig.Process("pedmodels", &cfg); err != nil {
		return cfg, pfx.Err(err)
	}

	fs := flag.NewFlagSet("pedmodels", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Optional YAML file with any of the settings below. Environment variables (PEDMODELS_VCF, ...) override it, and flags override both.")
	fs.StringVar(&cfg.VCF, "vcf", cfg.VCF, "Path to the VCF (local or gs://; may be compressed). Must be bgzipped and tabix-indexed if --region or --regions is used.")
	fs.StringVar(&cfg.PED, "ped", cfg.PED, "Path to the PED file describing the family.")
	fs.StringVar(&cfg.Family, "family", cfg.Family, "Family ID to evaluate. Optional if the PED file holds a single family.")
	fs.StringVar(&cfg.Genes, "genes", cfg.Genes, "Optional file of gene intervals. Variants are grouped by gene for the compound heterozygous search; without it, no compound pairs are formed.")
	fs.StringVar(&cfg.GeneLayout, "gene-layout", cfg.GeneLayout, "Layout of --genes. One of: BED, BIOMART, GTF2TSV.")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "Optional region to evaluate, e.g. 1:1000000-2000000.")
	fs.StringVar(&cfg.Regions, "regions", cfg.Regions, "Optional BED-like file of regions to evaluate.")
	fs.BoolVar(&cfg.Phased, "phased", cfg.Phased, "Use phased genotypes (GT with '|', PS field) to reject compound pairs whose alleles sit on one haplotype.")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Require every family member to be called before a model is reported.")
	fs.StringVar(&cfg.XStrict, "x-strict", cfg.XStrict, "Meaning of --strict for X-linked models: require-calls or reject-calls.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Maximum number of gene groups evaluated at once. 0 means no limit.")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "Output VCF path. Defaults to STDOUT.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.VCF = pedmodels.ExpandHome(cfg.VCF)
	cfg.PED = pedmodels.ExpandHome(cfg.PED)
	cfg.Genes = pedmodels.ExpandHome(cfg.Genes)
	cfg.Regions = pedmodels.ExpandHome(cfg.Regions)
	cfg.Out = pedmodels.ExpandHome(cfg.Out)

	return cfg, cfg.Validate()
}

// configPathFromArgs finds --config before the flags are parsed, since the
// file supplies defaults for the other flags.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if name == arg || arg == "--" {
			continue
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if value := strings.TrimPrefix(name, "config="); value != name {
			return value
		}
	}

	return ""
}

func (c *Config) LoadYAML(path string) error {
	f, err := os.Open(pedmodels.ExpandHome(path))
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil && err != io.EOF {
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	c.ConfigPath = path

	return nil
}

func (c Config) Validate() error {
	if c.VCF == "" {
		return fmt.Errorf("--vcf is required")
	}
	if c.PED == "" {
		return fmt.Errorf("--ped is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if _, err := c.Options(); err != nil {
		return err
	}

	return nil
}

func (c Config) Options() (inheritance.Options, error) {
	policy, err := inheritance.ParseXStrictPolicy(c.XStrict)
	if err != nil {
		return inheritance.Options{}, err
	}

	return inheritance.Options{
		Phased:  c.Phased,
		Strict:  c.Strict,
		XStrict: policy,
		Workers: c.Workers,
	}, nil
}

// UsesGoogleStorage reports whether any input lives in a bucket.
func (c Config) UsesGoogleStorage() bool {
	for _, path := range []string{c.VCF, c.PED, c.Genes, c.Regions} {
		if strings.HasPrefix(path, "gs://") {
			return true
		}
	}

	return false
}
