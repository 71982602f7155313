package resolution

// binding is a persistent list of local values; adding a value never changes an existing list
type binding struct {
	name  string
	value *FromLocalValue
	next  *binding
}

// scope is one level of the receiver chain.
// It is passed by value, so nested lambdas cannot change the bindings of their parents.
type scope struct {
	receiver ObjectOrigin
	locals   *binding
	parent   *scope
}

func (s scope) bind(value *FromLocalValue) scope {
	s.locals = &binding{name: value.Name, value: value, next: s.locals}
	return s
}

func (s scope) nested(receiver ObjectOrigin) scope {
	parent := s
	return scope{receiver: receiver, parent: &parent}
}

// declared looks only at the bindings of this level
func (s scope) declared(name string) bool {
	for b := s.locals; b != nil; b = b.next {
		if b.name == name {
			return true
		}
	}
	return false
}

func (s scope) local(name string) (*FromLocalValue, bool) {
	for current := &s; current != nil; current = current.parent {
		for b := current.locals; b != nil; b = b.next {
			if b.name == name {
				return b.value, true
			}
		}
	}
	return nil, false
}

// receivers returns scope receivers from the innermost outwards
func (s scope) receivers() []ObjectOrigin {
	var result []ObjectOrigin
	for current := &s; current != nil; current = current.parent {
		result = append(result, current.receiver)
	}
	return result
}
