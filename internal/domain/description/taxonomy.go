package description

// Taxonomy is the read-only classification table for one hardware family.
type Taxonomy struct {
	family       string
	mainNouns    []string
	materials    termSet
	styles       termSet
	attributes   termSet
	measurements termSet
}

type termSet map[string]struct{}

func newTermSet(terms ...string) termSet {
	set := make(termSet, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}
	return set
}

func (s termSet) has(term string) bool {
	_, ok := s[term]
	return ok
}

// fasteners is built once and never written afterwards.
var fasteners = &Taxonomy{
	family:       "FASTENERS",
	mainNouns:    []string{"RIVET", "SCREW", "BOLT", "NUT", "WASHER", "PIN"},
	materials:    newTermSet("ALUMINUM", "STEEL", "BRASS", "STAINLESS"),
	styles:       newTermSet("BLIND", "SOLID", "DOMED", "FLAT", "PAN", "HEX", "SOCKET"),
	attributes:   newTermSet("HEAD", "MANDREL", "THREAD", "DRIVE"),
	measurements: newTermSet("DIAMETER", "LENGTH", "THICKNESS"),
}

// Fasteners returns the FASTENERS taxonomy.
func Fasteners() *Taxonomy {
	return fasteners
}

// Family reports the hardware family name.
func (t *Taxonomy) Family() string {
	return t.family
}

// mainNoun reports the singular noun for a segment that is either a main noun
// or its plural formed with a trailing S.
func (t *Taxonomy) mainNoun(segment string) (string, bool) {
	for _, noun := range t.mainNouns {
		if segment == noun || segment == noun+"S" {
			return noun, true
		}
	}
	return "", false
}
