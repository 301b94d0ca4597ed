package knowledge

import (
	"errors"

	yerrors "github.com/yanun0323/errors"
)

var (
	ErrDuplicateKey    = errors.New("knowledge: duplicate (relation, subject) key")
	ErrSchemaViolation = errors.New("knowledge: multi-valued declared after facts exist")
	ErrEmptyPosition   = errors.New("knowledge: empty relation or subject")
	ErrInvalidValue    = errors.New("knowledge: invalid value kind")
)

// Fact is an immutable (relation, subject, value) triple.
type Fact struct {
	Relation string
	Subject  string
	Value    Value
}

// Pattern matches facts by exact unification on its bound positions.
// Relation is always bound. An empty Subject or a nil Value leaves that
// position unbound.
type Pattern struct {
	Relation string
	Subject  string
	Value    *Value
}

// Binding is one match of a pattern, carrying the values the unbound
// positions took.
type Binding struct {
	Subject string
	Value   Value
}

// Store holds typed fact triples indexed by (relation, subject). It is
// append-only: facts are written once during initialization and the
// store takes no further writes, so concurrent queries need no locking.
type Store struct {
	byKey      map[factKey][]int
	byRelation map[string][]int
	facts      []Fact
	multi      map[string]bool
}

type factKey struct {
	relation string
	subject  string
}

// NewStore creates an empty fact store.
func NewStore() *Store {
	return &Store{
		byKey:      make(map[factKey][]int),
		byRelation: make(map[string][]int),
		multi:      make(map[string]bool),
	}
}

// DeclareMultiValued allows a relation to hold several facts per
// subject. It must be called before any Add for that relation.
func (s *Store) DeclareMultiValued(relation string) error {
	relation = Normalize(relation)
	if relation == "" {
		return ErrEmptyPosition
	}
	if len(s.byRelation[relation]) > 0 {
		return yerrors.Wrap(ErrSchemaViolation, relation)
	}
	s.multi[relation] = true
	return nil
}

// Add appends one fact. It fails with ErrDuplicateKey when the
// (relation, subject) key already exists and the relation was not
// declared multi-valued.
func (s *Store) Add(relation, subject string, value Value) error {
	relation = Normalize(relation)
	subject = Normalize(subject)
	if relation == "" || subject == "" {
		return ErrEmptyPosition
	}
	if !value.Kind.IsAvailable() {
		return ErrInvalidValue
	}

	key := factKey{relation: relation, subject: subject}
	if len(s.byKey[key]) > 0 && !s.multi[relation] {
		return yerrors.Wrap(ErrDuplicateKey, relation+"/"+subject)
	}

	idx := len(s.facts)
	s.facts = append(s.facts, Fact{Relation: relation, Subject: subject, Value: value})
	s.byKey[key] = append(s.byKey[key], idx)
	s.byRelation[relation] = append(s.byRelation[relation], idx)
	return nil
}

// Query returns the bindings of all facts the pattern unifies with, in
// fact insertion order. No match yields an empty slice, never an error.
func (s *Store) Query(p Pattern) []Binding {
	relation := Normalize(p.Relation)
	if relation == "" {
		return nil
	}

	var candidates []int
	if p.Subject != "" {
		candidates = s.byKey[factKey{relation: relation, subject: Normalize(p.Subject)}]
	} else {
		candidates = s.byRelation[relation]
	}

	out := make([]Binding, 0, len(candidates))
	for _, idx := range candidates {
		fact := s.facts[idx]
		if p.Value != nil && !p.Value.Equal(fact.Value) {
			continue
		}
		out = append(out, Binding{Subject: fact.Subject, Value: fact.Value})
	}
	return out
}

// Len reports the number of stored facts.
func (s *Store) Len() int {
	return len(s.facts)
}

// AuthoredFact is the startup authoring input: one triple plus an
// optional multi-valued declaration for its relation. The store checks
// structural uniqueness only, not business correctness.
type AuthoredFact struct {
	Relation    string `json:"relation"`
	Subject     string `json:"subject"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	MultiValued bool   `json:"multiValued,omitempty"`
}

// Load builds a store from authoring input. Multi-valued declarations
// are applied before any fact of their relation. Authoring errors are
// fatal: the caller is expected to stop startup.
func Load(inputs []AuthoredFact) (*Store, error) {
	store := NewStore()
	for _, in := range inputs {
		if in.MultiValued {
			if err := store.DeclareMultiValued(in.Relation); err != nil {
				return nil, err
			}
		}
	}
	for _, in := range inputs {
		value, err := parseAuthoredValue(in)
		if err != nil {
			return nil, err
		}
		if err := store.Add(in.Relation, in.Subject, value); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func parseAuthoredValue(in AuthoredFact) (Value, error) {
	switch Normalize(in.Kind) {
	case "symbol":
		return SymbolValue(in.Value), nil
	case "scalar":
		d, err := parseScalar(in.Value)
		if err != nil {
			return Value{}, yerrors.Wrap(err, "parse scalar for "+in.Relation+"/"+in.Subject)
		}
		return ScalarValue(d), nil
	case "text":
		return TextValue(in.Value), nil
	default:
		return Value{}, yerrors.Wrap(ErrInvalidValue, in.Kind)
	}
}
