package description

import "regexp"

// dimensionToken matches raw numeric, fraction and unit tokens such as 1/4" or 10-32.
var dimensionToken = regexp.MustCompile(`^[0-9/."-]+$`)

// connectors are filler words dropped during classification.
var connectors = map[string]struct{}{
	"WITH": {},
	"FOR":  {},
}

// rule is one step of the classification cascade.
type rule struct {
	name  string
	match func(t *Taxonomy, segment string) bool
	apply func(c *components, segment string)
}

// classificationRules are evaluated in order and the first match wins. The
// last rule always matches.
var classificationRules = []rule{
	{
		name:  "dimension",
		match: func(_ *Taxonomy, s string) bool { return dimensionToken.MatchString(s) },
		apply: func(c *components, s string) { c.dimensions = append(c.dimensions, s) },
	},
	{
		// Overwrites: when several materials appear the last one is kept.
		name:  "material",
		match: func(t *Taxonomy, s string) bool { return t.materials.has(s) },
		apply: func(c *components, s string) { c.material = s },
	},
	{
		name:  "style",
		match: func(t *Taxonomy, s string) bool { return t.styles.has(s) },
		apply: func(c *components, s string) { c.style = append(c.style, s) },
	},
	{
		name:  "attribute",
		match: func(t *Taxonomy, s string) bool { return t.attributes.has(s) },
		apply: func(c *components, s string) { c.attributes = append(c.attributes, s) },
	},
	{
		name:  "measurement",
		match: func(t *Taxonomy, s string) bool { return t.measurements.has(s) },
		apply: func(c *components, s string) { c.measurements = append(c.measurements, s) },
	},
	{
		name: "connector",
		match: func(_ *Taxonomy, s string) bool {
			_, ok := connectors[s]
			return ok
		},
		apply: func(*components, string) {},
	},
	{
		name:  "fallback",
		match: func(*Taxonomy, string) bool { return true },
		apply: func(c *components, s string) { c.attributes = append(c.attributes, s) },
	},
}

func (t *Taxonomy) classify(segment string) rule {
	for _, r := range classificationRules {
		if r.match(t, segment) {
			return r
		}
	}
	return classificationRules[len(classificationRules)-1]
}
