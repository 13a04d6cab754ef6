package digest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ToInt(t *testing.T) {
	type table struct {
		name string
		data string
		exp  string
	}

	tt := []table{
		{
			name: "empty",
			data: "",
			exp:  "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "abc",
			data: "abc",
			exp:  "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	t.Log("Given the need to turn data into a comparable digest.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen hashing %q.", testID, tst.data)
				{
					v := digest.ToInt([]byte(tst.data))
					if got := digest.Hex(v); got != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the sha256 digest.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the sha256 digest.", success, testID)

					again := digest.ToInt([]byte(tst.data))
					if !v.Eq(&again) {
						t.Fatalf("\t%s\tTest %d:\tShould get the same value on every call.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the same value on every call.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_ByteOrder(t *testing.T) {
	t.Log("Given the need to read digests as big endian integers.")
	{
		t.Logf("\tTest 0:\tWhen the last byte of the digest is one.")
		{
			var sum [digest.Size]byte
			sum[digest.Size-1] = 1

			v := digest.FromBytes32(sum)
			if !v.Eq(uint256.NewInt(1)) {
				t.Fatalf("\t%s\tTest 0:\tShould get the value one: %s", failed, v.Dec())
			}
			t.Logf("\t%s\tTest 0:\tShould get the value one.", success)
		}

		t.Logf("\tTest 1:\tWhen the first byte of the digest is one.")
		{
			var sum [digest.Size]byte
			sum[0] = 1

			exp := new(uint256.Int).Lsh(uint256.NewInt(1), 248)
			v := digest.FromBytes32(sum)
			if !v.Eq(exp) {
				t.Fatalf("\t%s\tTest 1:\tShould get the value 2^248: %s", failed, v.Dec())
			}
			t.Logf("\t%s\tTest 1:\tShould get the value 2^248.", success)
		}
	}
}

func Test_Hex(t *testing.T) {
	t.Log("Given the need to render and parse digests.")
	{
		t.Logf("\tTest 0:\tWhen rendering zero.")
		{
			if got := digest.Hex(uint256.Int{}); got != digest.ZeroHash {
				t.Fatalf("\t%s\tTest 0:\tShould render the zero hash: %s", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould render the zero hash.", success)
		}

		t.Logf("\tTest 1:\tWhen parsing a rendered digest.")
		{
			v := digest.ToInt([]byte("wordchain"))
			back, err := digest.FromHex(digest.Hex(v))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to parse the digest: %v", failed, err)
			}
			if !back.Eq(&v) {
				t.Fatalf("\t%s\tTest 1:\tShould get the original value back.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould get the original value back.", success)
		}

		t.Logf("\tTest 2:\tWhen parsing a value wider than 256 bits.")
		{
			wide := "0x" + strings.Repeat("ff", digest.Size+1)
			_, err := digest.FromHex(wide)
			if !errors.Is(err, hexutil.ErrBig256Range) {
				t.Fatalf("\t%s\tTest 2:\tShould get a range error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get a range error.", success)
		}

		t.Logf("\tTest 3:\tWhen parsing a short value.")
		{
			v, err := digest.FromHex("0x0100")
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to parse the value: %v", failed, err)
			}
			if !v.Eq(uint256.NewInt(256)) {
				t.Fatalf("\t%s\tTest 3:\tShould get the value 256: %s", failed, v.Dec())
			}
			t.Logf("\t%s\tTest 3:\tShould get the value 256.", success)
		}
	}
}
