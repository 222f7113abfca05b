package cli

import "pws/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	TestDir     string
	NameFilter  string
	TestCases   bool
	Plain       bool
	Env         string
	AllureEnv   string
	Files       string
	Tag         string
	Cron        string
	Sheet       string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		TestDir:     f.TestDir,
		NameFilter:  f.NameFilter,
		TestCases:   f.TestCases,
		Plain:       f.Plain,
		Env:         f.Env,
		AllureEnv:   f.AllureEnv,
		Files:       f.Files,
		Tag:         f.Tag,
		Cron:        f.Cron,
		Sheet:       f.Sheet,
	}
}
