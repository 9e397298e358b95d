package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/lessonbuilder/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `lessonbuilder version`.
func String() string {
	return "lessonbuilder " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
