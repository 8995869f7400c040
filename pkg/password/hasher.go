package password

// Hasher defines the interface for one-way credential hashing implementations.
// The account service never sees plaintext beyond handing it to a Hasher.
type Hasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored hash
	Verify(password, hashedPassword string) (bool, error)
}
