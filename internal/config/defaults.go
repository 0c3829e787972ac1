package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSourcePath is the default path expansion starts from
	DefaultSourcePath = "."
	// DefaultReportFile is the default report file name
	DefaultReportFile = "report.json"
	// DefaultReportDir is the default report directory
	DefaultReportDir = ".wraptest"
	// DefaultConfigFile is the project config file looked up in the project path
	DefaultConfigFile = "wraptest.yaml"
	// DefaultWorkers is the default number of files processed in parallel
	DefaultWorkers = 4
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for sources
var DefaultPathsToIgnore = []string{
	"target",
	"node_modules",
	"vendor",
	".wraptest",
}
