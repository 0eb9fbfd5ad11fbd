package types

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// messageHashPrefix is the domain separator of message hashes.
var messageHashPrefix = []byte("solana-tx-message-v1")

// HashMessageBytes returns the message hash of already serialized message.
func HashMessageBytes(data []byte) Hash {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		// only returned for invalid key
		panic(fmt.Errorf("creating blake2b hasher: %w", err))
	}
	hasher.Write(messageHashPrefix)
	hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}

func hashVersionedMessage(msg VersionedMessage) (Hash, error) {
	data, err := msg.Serialize()
	if err != nil {
		return Hash{}, err
	}
	return HashMessageBytes(data), nil
}
