package session

// sessionLoadedMsg is sent when the controller has fetched the due cards.
type sessionLoadedMsg struct {
	Err error
}
