package cssenhance

// optimizerPass is the terminal pass. It runs only after the tokenizing
// passes have been applied, removes redundancy, and never introduces new
// token references. Two removals are considered safe: a declaration
// shadowed by a later declaration of the same property in the same rule,
// and a rule whose body is empty.
type optimizerPass struct{}

func (optimizerPass) Name() string { return "css-optimizer" }

func (optimizerPass) Apply(unit *SourceUnit, sheet *stylesheet, _ *Registry, _ *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		if r.selector != "" && len(r.decls) == 0 && r.bodyEnd > r.start {
			cands = append(cands, Candidate{
				Type:       TypeOptimize,
				Location:   locationAt(unit, r.start),
				Before:     unit.Code[r.start : r.bodyEnd+1],
				After:      "",
				Confidence: confExact,
				BasedOn:    "empty rule",
				start:      r.start,
				end:        r.bodyEnd + 1,
				exact:      true,
			})
			continue
		}

		last := make(map[string]int)
		for i, d := range r.decls {
			last[d.prop] = i
		}
		for i, d := range r.decls {
			if last[d.prop] == i || d.custom {
				continue
			}
			start, end := declSpan(unit.Code, d)
			cands = append(cands, Candidate{
				Type:       TypeOptimize,
				Location:   locationAt(unit, start),
				Before:     unit.Code[start:end],
				After:      "",
				Confidence: confExact,
				BasedOn:    "shadowed declaration",
				start:      start,
				end:        end,
				property:   d.prop,
				exact:      true,
			})
		}
	}
	return cands
}

// declSpan widens a declaration's value range to cover the property name
// and the trailing semicolon, so removal leaves no debris behind.
func declSpan(code string, d *decl) (int, int) {
	start := d.valStart
	for start > 0 && code[start-1] != '{' && code[start-1] != ';' && code[start-1] != '\n' {
		start--
	}
	end := d.valEnd
	for end < len(code) && (code[end] == ' ' || code[end] == '\t') {
		end++
	}
	if end < len(code) && code[end] == ';' {
		end++
	}
	return start, end
}
