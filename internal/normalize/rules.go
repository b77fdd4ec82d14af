package normalize

// RulesVersion identifies the active normalization rule set. Cached artefacts
// derived under a different version must be invalidated.
const RulesVersion uint16 = 1

// RuleSet enumerates every text rewrite applied when deriving comparison keys.
// Keeping the rules in one place makes a policy change a localized, testable
// edit instead of a scattered one.
type RuleSet struct {
	// Honorifics are leading tokens dropped from a field after lower-casing
	// and punctuation stripping ("dr smith" -> "smith").
	Honorifics []string
	// Suffixes are trailing tokens dropped the same way ("smith jr" -> "smith").
	Suffixes []string
	// MissingLiterals are whole-field spellings of "no value".
	MissingLiterals []string
}

// Default returns the standard rule set for appointment records.
func Default() *RuleSet {
	return &RuleSet{
		Honorifics:      []string{"dr", "mr", "mrs", "ms", "prof"},
		Suffixes:        []string{"jr", "sr", "ii", "iii", "iv"},
		MissingLiterals: []string{"na", "n/a", "none", "null", "nil", "nan", "-", "--"},
	}
}

// Extend returns a copy of the rule set with extra honorifics and suffixes
// appended. The receiver is not modified.
func (rs *RuleSet) Extend(honorifics, suffixes []string) *RuleSet {
	out := &RuleSet{
		Honorifics:      append(append([]string(nil), rs.Honorifics...), honorifics...),
		Suffixes:        append(append([]string(nil), rs.Suffixes...), suffixes...),
		MissingLiterals: append([]string(nil), rs.MissingLiterals...),
	}
	return out
}

func (rs *RuleSet) isHonorific(tok string) bool {
	for _, h := range rs.Honorifics {
		if tok == h {
			return true
		}
	}
	return false
}

func (rs *RuleSet) isSuffix(tok string) bool {
	for _, s := range rs.Suffixes {
		if tok == s {
			return true
		}
	}
	return false
}

func (rs *RuleSet) isMissingLiteral(field string) bool {
	for _, m := range rs.MissingLiterals {
		if field == m {
			return true
		}
	}
	return false
}
