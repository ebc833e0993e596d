package services

// Actor identifies the authenticated caller of a lifecycle operation.
// It carries exactly what the policy checks need: identity and role.
type Actor struct {
	ID   uint
	Role string
}
