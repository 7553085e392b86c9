package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/zonal/pkg/building"
	"github.com/chazu/zonal/pkg/extrude"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms zonal Lisp source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding global symbol registration for keywords.
//  2. Kebab-case to underscore: intersect-match -> intersect_match,
//     since zygomys reads hyphens as subtraction.
//  3. ; line comments become // comments.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFootprint parses a nested list of [x y] pairs into a 2D ring.
func toFootprint(s zygo.Sexp) (orb.Ring, error) {
	points, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	ring := make(orb.Ring, 0, len(points))
	for i, p := range points {
		coords, err := sexpListToSlice(p)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}
		if len(coords) != 2 {
			return nil, fmt.Errorf("point %d: expected [x y], got %d values", i+1, len(coords))
		}
		x, err := toFloat64(coords[0])
		if err != nil {
			return nil, fmt.Errorf("point %d x: %w", i+1, err)
		}
		y, err := toFloat64(coords[1])
		if err != nil {
			return nil, fmt.Errorf("point %d y: %w", i+1, err)
		}
		ring = append(ring, orb.Point{x, y})
	}
	return ring, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all zonal DSL builtins into a zygomys
// environment. The builtins operate on the provided Result, building its
// Building and collecting geometry diagnostics during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, res *Result) {

	// -----------------------------------------------------------------------
	// (block :name "a" :footprint [[0 0] [10 0] [10 10] [0 10]]
	//        :height 10 :storeys 2 :below-ground 1 :below-ground-height 2.5)
	// -----------------------------------------------------------------------
	env.AddFunction("block", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		opts := extrude.BlockOpts{}

		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: name: %w", err)
			}
			opts.Name = s
		}
		if v, ok := pa.kw["footprint"]; ok {
			fp, err := toFootprint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: footprint: %w", err)
			}
			opts.Footprint = fp
		}
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: height: %w", err)
			}
			opts.Height = f
		}
		if v, ok := pa.kw["storeys"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: storeys: %w", err)
			}
			opts.NumStoreys = n
		}
		if v, ok := pa.kw["below-ground"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: below-ground: %w", err)
			}
			opts.BelowGroundStoreys = n
		}
		if v, ok := pa.kw["below-ground-height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: below-ground-height: %w", err)
			}
			opts.BelowGroundStoreyHeight = f
		}

		diags, err := res.Building.AddBlock(opts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("block: %w", err)
		}
		res.Diagnostics = append(res.Diagnostics, diags...)
		return &zygo.SexpStr{S: opts.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (intersect) / (match) / (intersect-match)
	// -----------------------------------------------------------------------
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res.Diagnostics = append(res.Diagnostics, res.Building.Intersect()...)
		return zygo.SexpNull, nil
	})
	env.AddFunction("match", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res.Diagnostics = append(res.Diagnostics, res.Building.Match()...)
		return zygo.SexpNull, nil
	})
	env.AddFunction("intersect_match", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res.Diagnostics = append(res.Diagnostics, res.Building.IntersectMatch()...)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (translate x y z) / (translate-to-origin)
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("translate requires x y z, got %d args", len(pa.positional))
		}
		var d r3.Vec
		var err error
		if d.X, err = toFloat64(pa.positional[0]); err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: x: %w", err)
		}
		if d.Y, err = toFloat64(pa.positional[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: y: %w", err)
		}
		if d.Z, err = toFloat64(pa.positional[2]); err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: z: %w", err)
		}
		res.Building.Translate(d)
		return zygo.SexpNull, nil
	})
	env.AddFunction("translate_to_origin", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res.Building.TranslateToOrigin()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (rotate degrees) / (scale factor :axes "xy")
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("rotate requires an angle in degrees")
		}
		deg, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		res.Building.RotateZ(deg)
		return zygo.SexpNull, nil
	})
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("scale requires a factor")
		}
		factor, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		axes := ""
		if v, ok := pa.kw["axes"]; ok {
			if axes, err = toKeywordString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("scale: axes: %w", err)
			}
		}
		if err := res.Building.Scale(factor, axes); err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (wwr 0.25 :orientation "south")
	// -----------------------------------------------------------------------
	env.AddFunction("wwr", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("wwr requires a ratio")
		}
		ratio, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wwr: %w", err)
		}
		opts := building.WWROpts{}
		if v, ok := pa.kw["orientation"]; ok {
			if opts.Orientation, err = toKeywordString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("wwr: orientation: %w", err)
			}
		}
		if err := res.Building.SetWWR(ratio, opts); err != nil {
			return zygo.SexpNull, fmt.Errorf("wwr: %w", err)
		}
		return zygo.SexpNull, nil
	})
}
