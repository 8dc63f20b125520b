package script

import "os"

const (
	TransformEnv = "RESTREE_TRANSFORM"
)

// DefaultTransform returns the transform spec set in $RESTREE_TRANSFORM.
func DefaultTransform() string {
	return os.Getenv(TransformEnv)
}
