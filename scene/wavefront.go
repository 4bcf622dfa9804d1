package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type wavefrontReader struct {
	name string

	root       *Group
	material   *Material
	vertexList []mgl64.Vec3

	// current object being filled
	curName    string
	curIndices []uint32
}

// DecodeOBJ parses a Wavefront object stream into a group holding one mesh
// per object/group statement. All meshes share the default material and
// reference the same vertex list; polygons are fan-triangulated.
func DecodeOBJ(r io.Reader, name string) (*Group, error) {
	wr := &wavefrontReader{
		name:     name,
		root:     NewGroup(name),
		material: DefaultMaterial(),
		curName:  name,
	}
	if err := wr.parse(r); err != nil {
		return nil, err
	}
	return wr.root, nil
}

func (r *wavefrontReader) emitError(line int, msgFormat string, args ...interface{}) error {
	return fmt.Errorf("[%s: %d] error: %s", r.name, line, fmt.Sprintf(msgFormat, args...))
}

// flush turns the pending faces into a mesh node that only holds the
// vertices its faces reference.
func (r *wavefrontReader) flush() {
	if len(r.curIndices) == 0 {
		return
	}
	remap := make(map[uint32]uint32, len(r.curIndices))
	positions := make([]mgl64.Vec3, 0, len(r.curIndices))
	indices := make([]uint32, len(r.curIndices))
	for i, idx := range r.curIndices {
		local, ok := remap[idx]
		if !ok {
			local = uint32(len(positions))
			remap[idx] = local
			positions = append(positions, r.vertexList[idx])
		}
		indices[i] = local
	}
	r.root.Add(NewMesh(r.curName, NewGeometry(positions, indices), r.material))
	r.curIndices = nil
}

func (r *wavefrontReader) parse(in io.Reader) error {
	var lineNum int

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "o", "g":
			r.flush()
			if len(lineTokens) > 1 {
				r.curName = lineTokens[1]
			}
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "f":
			if len(lineTokens) < 4 {
				return r.emitError(lineNum, "unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
			}
			face := make([]uint32, 0, len(lineTokens)-1)
			for _, tok := range lineTokens[1:] {
				vTok := strings.SplitN(tok, "/", 2)[0]
				idx, err := selectFaceCoordIndex(vTok, len(r.vertexList))
				if err != nil {
					return r.emitError(lineNum, "invalid vertex reference %q: %s", tok, err.Error())
				}
				face = append(face, uint32(idx))
			}
			for i := 1; i+1 < len(face); i++ {
				r.curIndices = append(r.curIndices, face[0], face[i], face[i+1])
			}
		default:
			// normals, uvs, materials and smoothing groups do not affect
			// the surface shape
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", r.name, err)
	}
	r.flush()
	return nil
}

func parseFloat64(tokens []string) (float64, error) {
	if len(tokens) != 2 {
		return 0, fmt.Errorf("unsupported syntax for '%s'; expected 1 argument; got %d", tokens[0], len(tokens)-1)
	}
	return strconv.ParseFloat(tokens[1], 64)
}

func parseVec3(tokens []string) (mgl64.Vec3, error) {
	// a fourth (w) component is allowed and ignored
	if len(tokens) != 4 && len(tokens) != 5 {
		return mgl64.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", tokens[0], len(tokens)-1)
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := parseFloat64([]string{tokens[0], tokens[i+1]})
		if err != nil {
			return mgl64.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// selectFaceCoordIndex converts a 1-based (or negative, relative to the end
// of the list) face index into a 0-based index.
func selectFaceCoordIndex(token string, listLen int) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return -1, err
	}
	if index < 0 {
		index = listLen + index
	} else {
		index--
	}
	if index < 0 || index >= listLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return index, nil
}
