package teeplot

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// snippetReceiver names the plotter result inside a snippet.
const snippetReceiver = "teed"

// EvalSnippet runs a post-process snippet against fig.
//
// A snippet is a sequence of calls separated by ';' or newlines:
//
//	teed.SetTitle('signal'); teed.set_yscale("log"); reset()
//
// Receivers are "teed", bound to fig, and the entries of [Teeplot.Namespace].
// A bare name calls a function value from the namespace. Method names match
// exactly or ignoring case and underscores, so set_yscale finds SetYScale.
// Arguments must be literals: strings in single or double quotes, integers,
// floats, true, false, True, False, nil and None. A trailing error result is
// returned. Anything else is an INVALID_ARGUMENT error.
func (tp *Teeplot) EvalSnippet(src string, fig any) error {
	stmts, err := parseSnippet(src)
	if err != nil {
		return err
	}
	env := make(map[string]any, len(tp.Namespace)+1)
	for k, v := range tp.Namespace {
		env[k] = v
	}
	env[snippetReceiver] = fig

	for _, call := range stmts {
		if err := evalCall(env, call); err != nil {
			return err
		}
	}
	return nil
}

// parseSnippet parses src into its call expressions.
func parseSnippet(src string) ([]*ast.CallExpr, error) {
	body, err := requote(src)
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(token.NewFileSet(), "snippet", "package p; func _() {\n"+body+"\n}", parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "postprocess snippet %q", src)
	}
	fn := file.Decls[0].(*ast.FuncDecl)

	var calls []*ast.CallExpr
	for _, stmt := range fn.Body.List {
		switch s := stmt.(type) {
		case *ast.EmptyStmt:
		case *ast.ExprStmt:
			call, ok := s.X.(*ast.CallExpr)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidArgument, "postprocess snippet %q: only calls are allowed", src)
			}
			calls = append(calls, call)
		default:
			return nil, errors.New(errors.ErrCodeInvalidArgument, "postprocess snippet %q: only calls are allowed", src)
		}
	}
	return calls, nil
}

// requote rewrites single-quoted strings as Go string literals.
func requote(src string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '"', '`':
			j := i + 1
			for j < len(src) && src[j] != c {
				if src[j] == '\\' && c == '"' {
					j++
				}
				j++
			}
			if j >= len(src) {
				return "", errors.New(errors.ErrCodeInvalidArgument, "postprocess snippet %q: unterminated string", src)
			}
			b.WriteString(src[i : j+1])
			i = j
		case '\'':
			var s strings.Builder
			j := i + 1
			for ; j < len(src) && src[j] != '\''; j++ {
				if src[j] == '\\' && j+1 < len(src) {
					j++
				}
				s.WriteByte(src[j])
			}
			if j >= len(src) {
				return "", errors.New(errors.ErrCodeInvalidArgument, "postprocess snippet %q: unterminated string", src)
			}
			b.WriteString(strconv.Quote(s.String()))
			i = j
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func evalCall(env map[string]any, call *ast.CallExpr) error {
	fn, name, err := lookupCallee(env, call.Fun)
	if err != nil {
		return err
	}
	if call.Ellipsis.IsValid() {
		return errors.New(errors.ErrCodeInvalidArgument, "postprocess %s: spread arguments are not allowed", name)
	}

	args := make([]any, len(call.Args))
	for i, expr := range call.Args {
		if args[i], err = literal(expr); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "postprocess %s argument %d", name, i+1)
		}
	}

	in, err := convertArgs(fn.Type(), args)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "postprocess %s", name)
	}
	out := fn.Call(in)
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return fmt.Errorf("postprocess %s: %w", name, err)
		}
	}
	return nil
}

// lookupCallee resolves recv.Method or a bare function name.
func lookupCallee(env map[string]any, expr ast.Expr) (reflect.Value, string, error) {
	switch x := expr.(type) {
	case *ast.Ident:
		v, ok := env[x.Name]
		if !ok {
			return reflect.Value{}, x.Name, errors.New(errors.ErrCodeInvalidArgument, "postprocess: unknown name %s", x.Name)
		}
		fn := reflect.ValueOf(v)
		if fn.Kind() != reflect.Func || fn.IsNil() {
			return reflect.Value{}, x.Name, errors.New(errors.ErrCodeInvalidArgument, "postprocess: %s is not a function", x.Name)
		}
		return fn, x.Name, nil
	case *ast.SelectorExpr:
		recv, ok := x.X.(*ast.Ident)
		if !ok {
			return reflect.Value{}, "", errors.New(errors.ErrCodeInvalidArgument, "postprocess: receiver must be a name")
		}
		name := recv.Name + "." + x.Sel.Name
		v, ok := env[recv.Name]
		if !ok || v == nil {
			return reflect.Value{}, name, errors.New(errors.ErrCodeInvalidArgument, "postprocess: unknown receiver %s", recv.Name)
		}
		m := findMethod(reflect.ValueOf(v), x.Sel.Name)
		if !m.IsValid() {
			return reflect.Value{}, name, errors.New(errors.ErrCodeInvalidArgument,
				"postprocess: %T has no method %s", v, x.Sel.Name)
		}
		return m, name, nil
	}
	return reflect.Value{}, "", errors.New(errors.ErrCodeInvalidArgument, "postprocess: unsupported callee %T", expr)
}

// findMethod matches name exactly, then ignoring case and underscores.
func findMethod(v reflect.Value, name string) reflect.Value {
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	want := foldName(name)
	t := v.Type()
	for i := range t.NumMethod() {
		if foldName(t.Method(i).Name) == want {
			return v.Method(i)
		}
	}
	return reflect.Value{}
}

func foldName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// literal evaluates a literal argument to bool, int64, float64, string or nil.
func literal(expr ast.Expr) (any, error) {
	switch x := expr.(type) {
	case *ast.BasicLit:
		switch x.Kind {
		case token.INT:
			return strconv.ParseInt(x.Value, 0, 64)
		case token.FLOAT:
			return strconv.ParseFloat(x.Value, 64)
		case token.STRING:
			return strconv.Unquote(x.Value)
		case token.CHAR:
			r, _, _, err := strconv.UnquoteChar(x.Value[1:len(x.Value)-1], '\'')
			return string(r), err
		}
	case *ast.Ident:
		switch x.Name {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		case "nil", "None":
			return nil, nil
		}
		return nil, fmt.Errorf("name %s is not a literal", x.Name)
	case *ast.ParenExpr:
		return literal(x.X)
	case *ast.UnaryExpr:
		if x.Op != token.SUB && x.Op != token.ADD {
			break
		}
		v, err := literal(x.X)
		if err != nil {
			return nil, err
		}
		neg := x.Op == token.SUB
		switch n := v.(type) {
		case int64:
			if neg {
				n = -n
			}
			return n, nil
		case float64:
			if neg {
				n = -n
			}
			return n, nil
		}
	}
	return nil, fmt.Errorf("%T is not a literal", expr)
}

// convertArgs converts literal arguments to the parameter types of ft.
func convertArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("want at least %d arguments, got %d", n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("want %d arguments, got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var t reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			t = ft.In(n - 1).Elem()
		} else {
			t = ft.In(i)
		}
		v, err := convertArg(arg, t)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		in[i] = v
	}
	return in, nil
}

// convertArg converts within a kind class only: numbers to numbers, strings
// to strings, bools to bools.
func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}
	if t.Kind() == reflect.Interface {
		if n, ok := arg.(int64); ok {
			arg = int(n)
		}
		v := reflect.ValueOf(arg)
		if !v.Type().Implements(t) {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, t)
		}
		return v, nil
	}

	v := reflect.New(t).Elem()
	switch x := arg.(type) {
	case bool:
		if t.Kind() == reflect.Bool {
			v.SetBool(x)
			return v, nil
		}
	case string:
		if t.Kind() == reflect.String {
			v.SetString(x)
			return v, nil
		}
	case int64:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.OverflowInt(x) {
				return reflect.Value{}, fmt.Errorf("%d overflows %s", x, t)
			}
			v.SetInt(x)
			return v, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if x < 0 || v.OverflowUint(uint64(x)) {
				return reflect.Value{}, fmt.Errorf("%d overflows %s", x, t)
			}
			v.SetUint(uint64(x))
			return v, nil
		case reflect.Float32, reflect.Float64:
			v.SetFloat(float64(x))
			return v, nil
		}
	case float64:
		switch t.Kind() {
		case reflect.Float32, reflect.Float64:
			v.SetFloat(x)
			return v, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, t)
}
