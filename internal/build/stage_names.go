package build

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageLoadDocument StageName = "load_document"
	StageCompile      StageName = "compile"
	StageWriteOutputs StageName = "write_outputs"
	StageVerifyLinks  StageName = "verify_links"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
