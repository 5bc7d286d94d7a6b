package session

// State is the in-memory authentication state of one session context.
// Loaded flips to true exactly once, after the initial store read; until
// then no redirect decision may be taken on the token value.
type State struct {
	Token  string
	Loaded bool
}

type actionType int

const (
	actionUpdateToken actionType = iota
	actionSetTokenLoaded
	actionLogout
)

// Action is a transition input for the reducer. Construct via UpdateToken,
// SetTokenLoaded or Logout.
type Action struct {
	typ   actionType
	token string
}

// UpdateToken replaces the token, e.g. after login, refresh, or a
// credential-change notification from another session context.
func UpdateToken(token string) Action {
	return Action{typ: actionUpdateToken, token: token}
}

// SetTokenLoaded seeds the token (possibly empty) from the initial store
// read and marks the state loaded. Fired exactly once, at startup.
func SetTokenLoaded(token string) Action {
	return Action{typ: actionSetTokenLoaded, token: token}
}

// Logout clears the token.
func Logout() Action {
	return Action{typ: actionLogout}
}

// Token reports the token value this action persists.
func (a Action) Token() string {
	if a.typ == actionLogout {
		return ""
	}
	return a.token
}

// reduce is the pure transition function. Persistence and every other side
// effect live with the caller; this keeps the machine unit-testable.
func reduce(s State, a Action) State {
	switch a.typ {
	case actionUpdateToken:
		s.Token = a.token
	case actionSetTokenLoaded:
		s.Token = a.token
		s.Loaded = true
	case actionLogout:
		s.Token = ""
	}
	return s
}
