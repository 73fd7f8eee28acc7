package schema

import (
	"fmt"
	"strings"
)

// CurrentSchemaVersion is the contract version this module produces.
const CurrentSchemaVersion = "1.0"

// VersionInfo is the version contract carried by every pipeline output.
type VersionInfo struct {
	SchemaVersion   string `json:"schema_version"`
	PipelineVersion string `json:"pipeline_version"`
	ModelVersion    string `json:"model_version"`
}

// NewVersionInfo stamps the current schema version.
func NewVersionInfo(pipelineVersion, modelVersion string) VersionInfo {
	return VersionInfo{
		SchemaVersion:   CurrentSchemaVersion,
		PipelineVersion: pipelineVersion,
		ModelVersion:    modelVersion,
	}
}

// RequiredFieldsPresent checks the hard invariants consumers enforce before
// trusting a pipeline output.
func (v VersionInfo) RequiredFieldsPresent() bool {
	return v.SchemaVersion != "" && v.PipelineVersion != "" && v.ModelVersion != ""
}

// MissingFields lists the empty version fields.
func (v VersionInfo) MissingFields() []string {
	missing := []string{}
	if v.SchemaVersion == "" {
		missing = append(missing, "schema_version")
	}
	if v.PipelineVersion == "" {
		missing = append(missing, "pipeline_version")
	}
	if v.ModelVersion == "" {
		missing = append(missing, "model_version")
	}
	return missing
}

// CheckComplete returns a validation error naming every missing field.
func (v VersionInfo) CheckComplete() error {
	if v.RequiredFieldsPresent() {
		return nil
	}
	return &FieldError{
		Field:   "version",
		Message: "missing required fields: " + strings.Join(v.MissingFields(), ", "),
	}
}

// CheckSchemaVersion accepts any schema version sharing the current major
// version. Minor versions only add optional fields.
func (v VersionInfo) CheckSchemaVersion() error {
	if v.SchemaVersion == "" {
		return &FieldError{Field: "schema_version", Message: "must not be empty"}
	}
	if major(v.SchemaVersion) != major(CurrentSchemaVersion) {
		return &FieldError{
			Field:   "schema_version",
			Message: fmt.Sprintf("unsupported major version %q, want %s.x", v.SchemaVersion, major(CurrentSchemaVersion)),
		}
	}
	return nil
}

func major(version string) string {
	m, _, _ := strings.Cut(version, ".")
	return m
}
