package flow

// Parse splits a definition into prefix, fork and suffix.
//
// Items are classified in one pass:
//
//   - a [NodeRef] goes to the prefix until a fork has been seen, then to the suffix
//   - the first [ColumnsGroup] becomes the fork
//   - a [Column] before any fork fails with [ErrNotColumns]
//   - a [Column] or [ColumnsGroup] after the fork fails with [ErrMultipleForks]
//   - anything else (a nil item) fails with [ErrUnrecognized]
//
// Parse is pure and deterministic: parsing the same definition twice yields
// equal results. Errors halt parsing; no partial result is returned.
func Parse(def Definition) (*Parsed, error) {
	p := &Parsed{}

	for i, item := range def {
		path := childPath("", i)
		switch v := item.(type) {
		case NodeRef:
			if p.HasFork {
				p.Suffix = append(p.Suffix, v)
			} else {
				p.Prefix = append(p.Prefix, v)
			}
		case ColumnsGroup:
			if p.HasFork {
				return nil, newStructuralError(ErrMultipleForks, path, v)
			}
			if err := validateGroup(v, path); err != nil {
				return nil, err
			}
			p.Fork = v
			p.HasFork = true
		case Column:
			if p.HasFork {
				return nil, newStructuralError(ErrMultipleForks, path, v)
			}
			return nil, newStructuralError(ErrNotColumns, path, v)
		default:
			return nil, newStructuralError(ErrUnrecognized, path, v)
		}
	}

	p.HasSuffix = len(p.Suffix) > 0
	return p, nil
}

// MustParse is like Parse but panics on error. It is intended for
// definitions written as Go literals, where a structural error is a
// programming mistake.
func MustParse(def Definition) *Parsed {
	p, err := Parse(def)
	if err != nil {
		panic(err)
	}
	return p
}

// validateGroup rejects nil items inside typed forks. Decoded definitions
// never contain them, but literals built in Go can.
func validateGroup(g ColumnsGroup, path string) error {
	for ci, col := range g {
		colPath := childPath(path, ci)
		for ii, item := range col {
			itemPath := childPath(colPath, ii)
			switch v := item.(type) {
			case NodeRef:
			case ColumnsGroup:
				if err := validateGroup(v, itemPath); err != nil {
					return err
				}
			default:
				return newStructuralError(ErrUnrecognized, itemPath, nil)
			}
		}
	}
	return nil
}
