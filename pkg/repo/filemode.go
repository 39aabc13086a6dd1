package repo

import (
	"os"

	"github.com/odvcencio/oz/pkg/object"
)

func filePermFromMode(mode object.FileMode) os.FileMode {
	if mode == object.ModeExecutable {
		return 0o755
	}
	return 0o644
}

// entryType maps a tree entry mode to the kind of object it points at.
func entryType(mode object.FileMode) (object.ObjectType, bool) {
	if len(mode) < 2 {
		return "", false
	}
	switch mode[:2] {
	case "04":
		return object.TypeTree, true
	case "10", "12":
		return object.TypeBlob, true
	case "16":
		return object.TypeCommit, true
	default:
		return "", false
	}
}
