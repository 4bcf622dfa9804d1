//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/t0oms/voxelize/api"
	"github.com/t0oms/voxelize/voxel"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func densityArg(args []js.Value, i int) float64 {
	if len(args) <= i || args[i].IsUndefined() || args[i].IsNull() {
		return voxel.DefaultDensity
	}
	return args[i].Float()
}

func toUint8Array(out []byte) js.Value {
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

// voxelize(glbBytes, density?) returns voxelized .glb bytes or an error string.
func voxelize(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing model bytes")
	}
	out, err := api.VoxelizeGLB(bytesArg(args[0]), densityArg(args, 1))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func voxelizeObj(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing model bytes")
	}
	out, err := api.VoxelizeOBJ(bytesArg(args[0]), densityArg(args, 1))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func main() {
	js.Global().Set("voxelize", js.FuncOf(voxelize))
	js.Global().Set("voxelizeObj", js.FuncOf(voxelizeObj))
	select {}
}
