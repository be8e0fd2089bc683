package model

// Phabricator edge type codes for revision dependencies. Both directions are
// relevant to stack traversal.
const (
	EdgeTypeDependsOn    = 5
	EdgeTypeDependedOnBy = 6
)

// Edge is a typed directed relation between two handles.
type Edge struct {
	Src  string
	Type int
	Dst  string
}
