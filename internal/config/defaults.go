package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestDir holds the spec files, relative to the project
	DefaultTestDir = "tests"
	// DefaultSpecSuffix marks a file as a spec file
	DefaultSpecSuffix = ".spec.js"
	// DefaultEnvDir holds the .env.<name> profiles
	DefaultEnvDir = "env"
	// DefaultGrepFlag is the runner flag that filters tests by title
	DefaultGrepFlag = "--grep"
	// DefaultReportPath is the HTML report left behind by the runner
	DefaultReportPath = "playwright-report/index.html"
	// DefaultReportAttachment is the file name used when mailing the report
	DefaultReportAttachment = "Playwright_Automation_Report.html"
	// DefaultReportSubject is the subject of the report mail
	DefaultReportSubject = "Playwright Test Report"
	// DefaultAllureResultsDir is where the Allure reporter writes raw results
	DefaultAllureResultsDir = "allure-results"
	// DefaultAllureOutputDir is where the generated Allure report goes
	DefaultAllureOutputDir = "allure-report"
	// DefaultStorageDir is the run history directory
	DefaultStorageDir = "storage"
	// DefaultStorageFile is the run history file name
	DefaultStorageFile = "run-history.json"
	// DefaultStorageTable is the MySQL run history table
	DefaultStorageTable = "pws_runs"
	// DefaultHistoryLimit is how many runs the JSON history keeps
	DefaultHistoryLimit = 100
	// DefaultSMTPPort is the submission port
	DefaultSMTPPort = 587
	// DefaultBrowserTimeout is the wait-for-selector timeout in milliseconds
	DefaultBrowserTimeout = 30000
	// DefaultTestDataPath is the Excel workbook with test data
	DefaultTestDataPath = "resources/Testdata.xlsx"
	// DefaultConfigName is the optional config file (pws.yaml)
	DefaultConfigName = "pws"
)

// DefaultEnvironments are the profiles an operator may pick
var DefaultEnvironments = []string{"qa", "stage", "production"}

// DefaultRunnerCommand launches the test runner
var DefaultRunnerCommand = []string{"npx", "playwright", "test"}
