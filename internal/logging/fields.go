package logging

// Field names for structured log entries.
const (
	FieldError = "error"
	FieldPath  = "path"
	FieldFiles = "files"
	FieldJobs  = "jobs"

	// Registry
	FieldClass       = "class"
	FieldClasses     = "classes"
	FieldReplacement = "replacement"
	FieldRegistry    = "registry"

	// Rewrite diagnostics
	FieldOriginal  = "original"
	FieldAttempted = "attempted"
	FieldWords     = "words"
	FieldReplaced  = "replaced"

	// Runs
	FieldStylesheet = "stylesheet"
	FieldSource     = "source"
	FieldDryRun     = "dry_run"
	FieldOutput     = "output"
	FieldVersion    = "version"
)
