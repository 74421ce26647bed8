package application

// AuthorizationPolicy is the explicit admin set every privileged handler
// consults before mutating anything. It is a value built once from config,
// never ambient state.
type AuthorizationPolicy struct {
	admins map[int64]struct{}
}

func NewAuthorizationPolicy(adminIDs []int64) *AuthorizationPolicy {
	p := &AuthorizationPolicy{admins: make(map[int64]struct{}, len(adminIDs))}
	for _, id := range adminIDs {
		p.admins[id] = struct{}{}
	}
	return p
}

func (p *AuthorizationPolicy) IsAdmin(userID int64) bool {
	_, ok := p.admins[userID]
	return ok
}
