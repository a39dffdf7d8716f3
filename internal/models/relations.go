package models

// Rule says how one direction of a relationship appears in serialized output.
type Rule int

const (
	// Nest embeds the related record's own Serialize output.
	Nest Rule = iota
	// Scalar projects a single field (an id or a name) of the related record.
	Scalar
	// Omit leaves the relation out; only the foreign key column, if any, is emitted.
	Omit
)

func (r Rule) String() string {
	switch r {
	case Nest:
		return "nest"
	case Scalar:
		return "scalar"
	case Omit:
		return "omit"
	}
	return "unknown"
}

// Relation declares the serialization rule for one direction of a relationship.
// Key is the output key carrying it; empty for Omit.
type Relation struct {
	Owner  string
	Name   string
	Target string
	Rule   Rule
	Key    string
}

// RelationSet is a list of relation declarations.
type RelationSet []Relation

// Relations declares how each relationship is serialized. The Serialize
// methods take their relation keys from it. A relationship never nests in
// both directions.
var Relations = RelationSet{
	{Owner: "user", Name: "profile", Target: "profile", Rule: Nest, Key: "profile"},
	{Owner: "profile", Name: "user", Target: "user", Rule: Omit},
	{Owner: "teacher", Name: "courses", Target: "course", Rule: Nest, Key: "courses"},
	{Owner: "course", Name: "teacher", Target: "teacher", Rule: Scalar, Key: "teacher"},
	{Owner: "course", Name: "enrollments", Target: "enrollment", Rule: Nest, Key: "enrollments"},
	{Owner: "student", Name: "enrollments", Target: "enrollment", Rule: Nest, Key: "enrollments"},
	{Owner: "enrollment", Name: "course", Target: "course", Rule: Scalar, Key: "courses"},
	{Owner: "enrollment", Name: "student", Target: "student", Rule: Scalar, Key: "student_id"},
}

// Lookup returns the declaration for owner.name.
func (rs RelationSet) Lookup(owner, name string) (Relation, bool) {
	for _, r := range rs {
		if r.Owner == owner && r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// key returns the output key declared for owner.name, or name itself.
func (rs RelationSet) key(owner, name string) string {
	if r, ok := rs.Lookup(owner, name); ok && r.Key != "" {
		return r.Key
	}
	return name
}

// Of returns every declaration owned by owner.
func (rs RelationSet) Of(owner string) []Relation {
	var out []Relation
	for _, r := range rs {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out
}

// Acyclic reports whether following Nest edges can never return to an entity
// already being serialized.
func (rs RelationSet) Acyclic() bool {
	edges := make(map[string][]string)
	for _, r := range rs {
		if r.Rule == Nest {
			edges[r.Owner] = append(edges[r.Owner], r.Target)
		}
	}
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var visit func(n string) bool
	visit = func(n string) bool {
		switch state[n] {
		case visiting:
			return false
		case done:
			return true
		}
		state[n] = visiting
		for _, next := range edges[n] {
			if !visit(next) {
				return false
			}
		}
		state[n] = done
		return true
	}
	for n := range edges {
		if !visit(n) {
			return false
		}
	}
	return true
}
