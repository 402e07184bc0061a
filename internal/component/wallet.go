package component

// Wallet holds the player's coins. Coins never go below zero.
type Wallet struct {
	Coins int
}
