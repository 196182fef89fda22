package dynhash

import (
	"github.com/consensys/gnark/std/math/uints"
)

// Family identifies a supported hash family and output length.
type Family uint8

const (
	// SHA2_224 and friends are the Merkle–Damgård family: 8-word state,
	// 16-word blocks, big-endian words, 0x80 marker and a trailing big-endian
	// bit length.
	SHA2_224 Family = iota
	SHA2_256
	SHA2_384
	SHA2_512
	// SHA3_256 and Keccak256 are the sponge family: 25-lane state,
	// rate-sized little-endian blocks, domain-separation byte spliced at the
	// message end and 0x80 closing the final block. Keccak256 is the
	// pre-NIST padding variant used by Ethereum.
	SHA3_256
	Keccak256
)

func (f Family) String() string {
	switch f {
	case SHA2_224:
		return "SHA2-224"
	case SHA2_256:
		return "SHA2-256"
	case SHA2_384:
		return "SHA2-384"
	case SHA2_512:
		return "SHA2-512"
	case SHA3_256:
		return "SHA3-256"
	case Keccak256:
		return "Keccak-256"
	default:
		return "unknown"
	}
}

// Size returns the digest size in bytes.
func (f Family) Size() int {
	return f.config().outputBytes
}

// config is the compile-time shape of a family: word and block geometry,
// byte order, padding marker and length encoding.
type config struct {
	wordBytes   int  // bytes per word: 4 or 8
	blockWords  int  // words per block: 16, or rate/8 for the sponge
	headerBytes int  // minimum padding: marker plus length encoding
	bigEndian   bool // word byte order
	marker      byte // first padding byte
	mdLength    bool // big-endian bit length in the two trailing words
	spongeClose bool // 0x80 into the top byte of the final block's last word
	outputBytes int
}

func (f Family) config() config {
	switch f {
	case SHA2_224:
		return config{wordBytes: 4, blockWords: 16, headerBytes: 9, bigEndian: true, marker: 0x80, mdLength: true, outputBytes: 28}
	case SHA2_256:
		return config{wordBytes: 4, blockWords: 16, headerBytes: 9, bigEndian: true, marker: 0x80, mdLength: true, outputBytes: 32}
	case SHA2_384:
		return config{wordBytes: 8, blockWords: 16, headerBytes: 17, bigEndian: true, marker: 0x80, mdLength: true, outputBytes: 48}
	case SHA2_512:
		return config{wordBytes: 8, blockWords: 16, headerBytes: 17, bigEndian: true, marker: 0x80, mdLength: true, outputBytes: 64}
	case SHA3_256:
		return config{wordBytes: 8, blockWords: 17, headerBytes: 1, marker: 0x06, spongeClose: true, outputBytes: 32}
	case Keccak256:
		return config{wordBytes: 8, blockWords: 17, headerBytes: 1, marker: 0x01, spongeClose: true, outputBytes: 32}
	default:
		panic("unknown hash family")
	}
}

// InitialState32 returns the standard initial state of a 32-bit word family.
func InitialState32(f Family) [8]uints.U32 {
	var seed []uint32
	switch f {
	case SHA2_224:
		seed = []uint32{0xC1059ED8, 0x367CD507, 0x3070DD17, 0xF70E5939, 0xFFC00B31, 0x68581511, 0x64F98FA7, 0xBEFA4FA4}
	case SHA2_256:
		seed = []uint32{0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A, 0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19}
	default:
		panic("not a 32-bit word family")
	}
	var state [8]uints.U32
	copy(state[:], uints.NewU32Array(seed))
	return state
}

// InitialState64 returns the standard initial state of a 64-bit word family.
func InitialState64(f Family) [8]uints.U64 {
	var seed []uint64
	switch f {
	case SHA2_384:
		seed = []uint64{0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939, 0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4}
	case SHA2_512:
		seed = []uint64{0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1, 0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179}
	default:
		panic("not a 64-bit word family")
	}
	var state [8]uints.U64
	copy(state[:], uints.NewU64Array(seed))
	return state
}
