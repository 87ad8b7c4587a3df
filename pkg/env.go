package stride

// Environment is one frame of the scope chain. A child only points at its
// parent; parents never see their children, so a frame is garbage as soon
// as the block that created it returns.
type Environment struct {
	values map[string]Value
	parent *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

func (e *Environment) Child() *Environment {
	return NewEnvironment(e)
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Declare binds name in this frame. Shadowing a binding of an ancestor is
// allowed, binding the same name twice in one frame is not.
func (e *Environment) Declare(name string, v Value) error {
	if _, ok := e.values[name]; ok {
		return &RedeclarationError{Name: name}
	}

	e.values[name] = v
	return nil
}

// Assign updates the nearest frame that binds name.
func (e *Environment) Assign(name string, v Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return nil
		}
	}

	return &UndeclaredVariableError{Name: name}
}

func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}

	return nil, &UndeclaredVariableError{Name: name}
}

// Bindings returns a copy of this frame's own bindings. Ancestors are not
// included.
func (e *Environment) Bindings() map[string]Value {
	bindings := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		bindings[k] = v
	}

	return bindings
}
