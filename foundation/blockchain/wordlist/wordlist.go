// Package wordlist loads the word list that every block attests to. The
// words also act as the digit alphabet used to render nonces for humans.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// ErrTooFewWords is returned when the list can't act as a numeral system.
var ErrTooFewWords = errors.New("word list needs at least two entries")

// maxLineSize bounds the length of a single entry.
const maxLineSize = 1024 * 1024

// =============================================================================

// WordList is the immutable in memory copy of the word list file.
type WordList struct {
	words       []string
	fingerprint uint256.Int
}

// Load reads the word list file at the specified path.
func Load(path string) (*WordList, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}

	return New(content)
}

// New constructs a word list from the raw file content. Entries are newline
// delimited, a trailing carriage return is dropped from each entry and a final
// newline does not produce an empty entry.
func New(content []byte) (*WordList, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning word list: %w", err)
	}

	if len(words) < 2 {
		return nil, ErrTooFewWords
	}

	wl := WordList{
		words:       words,
		fingerprint: digest.ToInt(content),
	}

	return &wl, nil
}

// Fingerprint returns the digest of the complete file content.
func (wl *WordList) Fingerprint() uint256.Int {
	return wl.fingerprint
}

// Len returns the number of entries, which is also the numeral base.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// Word returns the entry at the specified index.
func (wl *WordList) Word(i int) string {
	return wl.words[i]
}

// Digits renders the number in the numeral system whose digits are the
// entries of the list. The least significant digit comes first and digits
// are separated by a single space. Zero renders as an empty string.
func (wl *WordList) Digits(n uint32) string {
	base := uint64(len(wl.words))

	var b strings.Builder
	for v := uint64(n); v > 0; v /= base {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(wl.words[v%base])
	}

	return b.String()
}
