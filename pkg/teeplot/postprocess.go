package teeplot

import (
	"reflect"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// NamedFunc is a post-process function with an explicit name for the
// "post" filename attribute.
type NamedFunc struct {
	Name string
	Fn   any
}

// Named attaches a filename name to a post-process function. Closures and
// method values need it: their runtime names are not descriptive.
func Named(name string, fn any) NamedFunc {
	return NamedFunc{Name: name, Fn: fn}
}

var errorType = reflect.TypeFor[error]()

// resolvePostProcess turns a post-process option into a step over the
// plotter result. Accepted shapes:
//
//   - nil or "": no step
//   - func(T) or func(T) error where F is assignable to T
//   - func() or func() error
//   - a [NamedFunc] wrapping one of the above
//   - a string snippet, see [Teeplot.EvalSnippet]
func resolvePostProcess[F Figure](tp *Teeplot, p any) (func(F) error, error) {
	switch x := p.(type) {
	case nil:
		return nil, nil
	case string:
		if x == "" {
			return nil, nil
		}
		return func(fig F) error { return tp.EvalSnippet(x, fig) }, nil
	case NamedFunc:
		if x.Fn == nil {
			return nil, errors.New(errors.ErrCodeInvalidType, "postprocess %s has no function", x.Name)
		}
		return resolvePostFunc[F](x.Fn)
	case func():
		return func(F) error { x(); return nil }, nil
	case func() error:
		return func(F) error { return x() }, nil
	case func(F):
		return func(fig F) error { x(fig); return nil }, nil
	case func(F) error:
		return x, nil
	}
	if reflect.TypeOf(p).Kind() != reflect.Func {
		return nil, errors.New(errors.ErrCodeInvalidType,
			"postprocess must be a string or a function, not %s", describe(p))
	}
	return resolvePostFunc[F](p)
}

// resolvePostFunc checks the signature of fn by reflection.
func resolvePostFunc[F Figure](fn any) (func(F) error, error) {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, errors.New(errors.ErrCodeInvalidType,
			"postprocess must be a string or a function, not %s", describe(fn))
	}
	if fv.IsNil() {
		return nil, errors.New(errors.ErrCodeInvalidType, "postprocess function is nil")
	}

	figType := reflect.TypeFor[F]()
	returnsError := ft.NumOut() == 1 && ft.Out(0) == errorType
	okOut := ft.NumOut() == 0 || returnsError
	okIn := !ft.IsVariadic() &&
		(ft.NumIn() == 0 || (ft.NumIn() == 1 && figType.AssignableTo(ft.In(0))))
	if !okOut || !okIn {
		return nil, errors.New(errors.ErrCodeSignature,
			"postprocess %s has signature %s; want func(), func(%s) or either returning error",
			FuncName(fn), ft, figType)
	}

	return func(fig F) error {
		var in []reflect.Value
		if ft.NumIn() == 1 {
			in = []reflect.Value{reflect.ValueOf(&fig).Elem()}
		}
		out := fv.Call(in)
		if returnsError {
			if err, _ := out[0].Interface().(error); err != nil {
				return err
			}
		}
		return nil
	}, nil
}
