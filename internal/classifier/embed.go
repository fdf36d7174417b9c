package classifier

import _ "embed"

//go:embed artifact.json
var modelArtifact []byte
