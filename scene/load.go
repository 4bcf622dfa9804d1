package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/klauspost/compress/zstd"
	"github.com/qmuntal/gltf"
)

const zstdSuffix = ".zst"

// LoadModel reads a model file and returns its root group. The format is
// selected by extension: .glb, .gltf or .obj, each optionally followed by
// .zst for zstd-compressed input.
func LoadModel(path string) (*Group, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	if ext == zstdSuffix {
		data, err := readZstd(path)
		if err != nil {
			return nil, err
		}
		inner := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
		return decodeModel(bytes.NewReader(data), inner, name)
	}

	if ext == ".gltf" || ext == ".glb" {
		// gltf.Open resolves external buffers relative to the file
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return groupFromDocument(doc, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeModel(f, ext, name)
}

func decodeModel(r io.Reader, ext, name string) (*Group, error) {
	switch ext {
	case ".glb", ".gltf":
		return DecodeGLTF(r, name)
	case ".obj":
		return DecodeOBJ(r, name)
	}
	return nil, fmt.Errorf("unsupported model format %q", ext)
}

func readZstd(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// SaveGLB writes the scene to path as GLB. A .zst suffix compresses the
// output with zstd.
func SaveGLB(path string, s *Scene) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if strings.ToLower(filepath.Ext(path)) != zstdSuffix {
		return EncodeGLB(f, s)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := EncodeGLB(enc, s); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Recenter translates node so the center of its world bounding box lies at
// the origin. It returns the applied offset.
func Recenter(node Node) mgl64.Vec3 {
	box := NewObject3D(node).BoundingBox()
	if box.IsEmpty() {
		return mgl64.Vec3{}
	}
	offset := box.Center().Mul(-1)
	node.SetPosition(node.Position().Add(offset))
	return offset
}
