package loaders

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

const spirvMagic uint32 = 0x07230203

var ErrInvalidSPIRV = errors.New("invalid SPIR-V module")

// ShaderCode is a SPIR-V module as 32-bit words, ready to be handed to
// vkCreateShaderModule.
type ShaderCode struct {
	Words []uint32
}

// Size is the code size in bytes.
func (sc *ShaderCode) Size() int {
	return len(sc.Words) * 4
}

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSPIRV(data)
}

// ParseSPIRV checks the module header and converts the little endian byte
// stream to words.
func ParseSPIRV(b []byte) (*ShaderCode, error) {
	if len(b) < 4 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of 4", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: bad magic number 0x%08x", ErrInvalidSPIRV, words[0])
	}
	return &ShaderCode{Words: words}, nil
}
