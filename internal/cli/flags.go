package cli

import "wraptest/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers    int
	SourcePath string
	NameFilter string
	OutDir     string
	ConfigFile string
	Check      bool
	FailFast   bool
	Watch      bool
	TestCases  bool
	Verbose    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:    f.Workers,
		SourcePath: f.SourcePath,
		NameFilter: f.NameFilter,
		OutDir:     f.OutDir,
		ConfigFile: f.ConfigFile,
		Check:      f.Check,
		FailFast:   f.FailFast,
		Watch:      f.Watch,
		TestCases:  f.TestCases,
		Verbose:    f.Verbose,
	}
}
