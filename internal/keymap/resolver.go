package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]keyRef   // key -> action and slot
	byAction map[Action][]string // action -> keys (for help/documentation)
}

// keyRef is the action of a key and the key's position within its binding.
type keyRef struct {
	action Action
	slot   int
}

// NewResolver creates a resolver from bindings. When a key appears twice the
// later binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]keyRef),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for i, key := range b.Keys {
			r.bindings[key] = keyRef{action: b.Action, slot: i}
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// ForContext creates a resolver for a context, global bindings included.
func ForContext(context string) *Resolver {
	return NewResolver(For(context))
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key].action
}

// Lookup returns the action for a key and the key's slot within its binding.
// For ActionBranch the slot is the trigger index ("1" is slot 0).
func (r *Resolver) Lookup(key string) (Action, int) {
	ref, ok := r.bindings[key]
	if !ok {
		return "", -1
	}
	return ref.action, ref.slot
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
