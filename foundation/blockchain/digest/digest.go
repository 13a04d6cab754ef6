// Package digest provides the hashing support for the blockchain. Every
// digest is a sha256 sum read as a 256 bit big endian unsigned integer so
// digests can be ordered against a mining target.
package digest

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Size is the number of bytes in a digest.
const Size = sha256.Size

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Sum returns the raw sha256 digest of the data.
func Sum(data []byte) [Size]byte {
	return sha256.Sum256(data)
}

// ToInt returns the sha256 digest of the data as a 256 bit unsigned integer.
// The first byte of the digest is the most significant byte of the integer.
func ToInt(data []byte) uint256.Int {
	return FromBytes32(sha256.Sum256(data))
}

// FromBytes32 interprets a raw digest as a big endian 256 bit integer.
func FromBytes32(sum [Size]byte) uint256.Int {
	var v uint256.Int
	v.SetBytes32(sum[:])
	return v
}

// Hex renders the value as a 0x prefixed, zero padded, 64 digit hex string.
func Hex(v uint256.Int) string {
	b := v.Bytes32()
	return hexutil.Encode(b[:])
}

// FromHex parses a 0x prefixed hex string produced by Hex.
func FromHex(s string) (uint256.Int, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return uint256.Int{}, err
	}

	if len(b) > Size {
		return uint256.Int{}, hexutil.ErrBig256Range
	}

	var v uint256.Int
	v.SetBytes(b)

	return v, nil
}
