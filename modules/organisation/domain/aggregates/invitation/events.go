package invitation

type CreatedEvent struct {
	Result Invitation
}

type SettledEvent struct {
	Result Invitation
}
