package tui

// Signer is the submission side of the cockpit. The engine never signs or
// broadcasts anything; the app only checks for a connected signer before
// enabling the submit key on the dry-run screen.
type Signer interface {
	Connected() bool
	Describe() string
}

// NoSigner is the shipped stub. Wallet integration lives outside this
// program, so submission stays disabled.
type NoSigner struct{}

func (NoSigner) Connected() bool { return false }

func (NoSigner) Describe() string { return "no signer connected" }
