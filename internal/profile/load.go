package profile

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"unsafe"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/llexport/linkage"

	_ "github.com/goplus/llexport/internal/ixgo"
)

// Suffix is the file suffix of export profiles.
const Suffix = "_export.gox"

// Load interprets an "_export.gox" profile and returns the macro names it
// declares, completed with the defaults for its library.
func Load(path string) (linkage.Profile, error) {
	if !strings.HasSuffix(path, Suffix) {
		return linkage.Profile{}, fmt.Errorf("failed to load profile: file name is not valid: %s", path)
	}
	ctx := ixgo.NewContext(0)

	source, err := xgobuild.BuildFile(ctx, path, nil)
	if err != nil {
		return linkage.Profile{}, err
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return linkage.Profile{}, err
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return linkage.Profile{}, err
	}
	if err = interp.RunInit(); err != nil {
		return linkage.Profile{}, err
	}
	structName, _, ok := strings.Cut(filepath.Base(path), "_")
	if !ok {
		return linkage.Profile{}, fmt.Errorf("failed to load profile: file name is not valid: %s", path)
	}
	typ, ok := interp.GetType(structName)
	if !ok {
		return linkage.Profile{}, fmt.Errorf("failed to load profile: struct name not found: %s", structName)
	}
	val := reflect.New(typ)
	class := val.Elem()

	val.Interface().(interface{ Main() }).Main()

	p := linkage.Profile{
		Lib:           valueOf(class, "lib").(string),
		ProducerMacro: valueOf(class, "producer").(string),
		SuppressMacro: valueOf(class, "suppress").(string),
		CallConvMacro: valueOf(class, "callconv").(string),
		ExportMacro:   valueOf(class, "export").(string),
		MinCompiler:   valueOf(class, "minCompiler").(string),
	}
	if p.Lib == "" {
		p.Lib = structName
	}
	return p.WithDefaults(), nil
}

// unexportValueOf creates a reflect.Value that allows access to unexported fields.
func unexportValueOf(field reflect.Value) reflect.Value {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

func valueOf(elem reflect.Value, name string) any {
	return unexportValueOf(elem.FieldByName(name)).Interface()
}
