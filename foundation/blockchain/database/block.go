package database

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// ErrChainBroken is returned when a block does not link to the current head.
var ErrChainBroken = errors.New("block does not extend the chain head")

// ErrHashNotSolved is returned when a block's hash is not below its target.
var ErrHashNotSolved = errors.New("block hash is not below the target")

// =============================================================================

// Layout of the block envelope that is hashed. All fields are big endian.
const (
	prevHashOffset    = 0
	numberOffset      = prevHashOffset + 32
	fingerprintOffset = numberOffset + 8
	NonceOffset       = fingerprintOffset + 32
	EnvelopeSize      = NonceOffset + 4
)

// Block represents one link in the chain.
type Block struct {
	PrevHash    uint256.Int // Identity of the parent block, zero for genesis.
	Number      uint64      // Height in the chain, genesis is 0.
	Fingerprint uint256.Int // Digest of the word list shared by every block.
	Nonce       uint32      // Value identified to solve the hash solution.
}

// NewGenesis constructs the root block of the chain.
func NewGenesis(fingerprint uint256.Int) Block {
	return Block{
		Fingerprint: fingerprint,
	}
}

// NewCandidate constructs the next block to be mined on top of the head. The
// nonce starts at 0 and will be identified by the POW algorithm.
func NewCandidate(head Block) Block {
	return Block{
		PrevHash:    head.Hash(),
		Number:      head.Number + 1,
		Fingerprint: head.Fingerprint,
	}
}

// IsGenesis reports if this is the root block.
func (b Block) IsGenesis() bool {
	return b.Number == 0 && b.PrevHash.IsZero()
}

// Envelope returns the deterministic serialization of the block that
// is hashed to produce its identity.
func (b Block) Envelope() [EnvelopeSize]byte {
	var env [EnvelopeSize]byte

	prev := b.PrevHash.Bytes32()
	copy(env[prevHashOffset:], prev[:])

	binary.BigEndian.PutUint64(env[numberOffset:], b.Number)

	fp := b.Fingerprint.Bytes32()
	copy(env[fingerprintOffset:], fp[:])

	PutNonce(&env, b.Nonce)

	return env
}

// PutNonce overwrites the nonce inside an existing envelope. This lets the
// POW loop hash candidates without rebuilding the envelope.
func PutNonce(env *[EnvelopeSize]byte, nonce uint32) {
	binary.BigEndian.PutUint32(env[NonceOffset:], nonce)
}

// Hash returns the identity of the block at its current nonce. It is
// computed on demand and changes every time the nonce changes.
func (b Block) Hash() uint256.Int {
	env := b.Envelope()
	return digest.ToInt(env[:])
}

// HashHex returns the identity of the block as a hex string.
func (b Block) HashHex() string {
	return digest.Hex(b.Hash())
}

// ValidateBlock checks the block can be sealed on top of the previous block
// given the target that was active when the search began.
func (b Block) ValidateBlock(previous Block, target uint256.Int) error {
	if b.Number != previous.Number+1 {
		return fmt.Errorf("%w: got number %d, exp %d", ErrChainBroken, b.Number, previous.Number+1)
	}

	prevHash := previous.Hash()
	if !b.PrevHash.Eq(&prevHash) {
		return fmt.Errorf("%w: got parent %s, exp %s", ErrChainBroken, digest.Hex(b.PrevHash), digest.Hex(prevHash))
	}

	if !b.Fingerprint.Eq(&previous.Fingerprint) {
		return fmt.Errorf("%w: word list fingerprint changed", ErrChainBroken)
	}

	hash := b.Hash()
	if !hash.Lt(&target) {
		return fmt.Errorf("%w: hash %s, target %s", ErrHashNotSolved, digest.Hex(hash), target.Dec())
	}

	return nil
}

// =============================================================================

// Work estimates how many hashes it takes on average to find a digest as
// small as the specified hash, 2^256 / (hash + 1). A zero hash saturates at
// 2^256-1.
func Work(hash uint256.Int) uint256.Int {
	var d uint256.Int
	if _, overflow := d.AddOverflow(&hash, uint256.NewInt(1)); overflow {
		return *uint256.NewInt(1)
	}

	half := new(uint256.Int).Lsh(uint256.NewInt(1), 255)

	var work uint256.Int
	if _, overflow := work.MulDivOverflow(half, uint256.NewInt(2), &d); overflow {
		work.SetAllOne()
	}

	return work
}

// =============================================================================

// SealedBlock is a block that has been accepted into the chain along with
// the target it was mined against. Work and AccumulatedWork are assigned by
// the database when the block is written, genesis carries no work.
type SealedBlock struct {
	Block           Block
	Target          uint256.Int
	SealedAt        time.Time
	Work            uint256.Int
	AccumulatedWork uint256.Int
}

// BlockData represents what is handed out to callers outside the
// blockchain packages.
type BlockData struct {
	Hash        string `json:"hash"`
	PrevHash    string `json:"prev_hash"`
	Number      uint64 `json:"number"`
	Fingerprint string `json:"fingerprint"`
	Nonce       uint32 `json:"nonce"`
	Target      string `json:"target"`
	TimeStamp   uint64 `json:"timestamp"`
	Work        string `json:"work"`
	AccWork     string `json:"accumulated_work"`
}

// NewBlockData constructs the value handed out for a sealed block.
func NewBlockData(sb SealedBlock) BlockData {
	return BlockData{
		Hash:        sb.Block.HashHex(),
		PrevHash:    digest.Hex(sb.Block.PrevHash),
		Number:      sb.Block.Number,
		Fingerprint: digest.Hex(sb.Block.Fingerprint),
		Nonce:       sb.Block.Nonce,
		Target:      sb.Target.Dec(),
		TimeStamp:   uint64(sb.SealedAt.UTC().Unix()),
		Work:        sb.Work.Dec(),
		AccWork:     sb.AccumulatedWork.Dec(),
	}
}
