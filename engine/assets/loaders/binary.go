package loaders

import (
	"os"
)

// BinaryLoader reads a file as-is.
type BinaryLoader struct{}

func (bl *BinaryLoader) Load(path string) (interface{}, error) {
	return os.ReadFile(path)
}
