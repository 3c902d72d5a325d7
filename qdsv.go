// Package qdsv implements qDSA signatures and Diffie-Hellman key exchange
// over the genus-2 Gaudry-Schost Kummer surface, sized for firmware
// bootloader verification: a 32-byte message, a 32-byte public key, and a
// 64-byte signature. Nonce and challenge derivation use BobJr, a reduced-
// round Keccak-f[800] sponge; see internal/bobjr.
package qdsv

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/lix2ng/qdsv/internal/bobjr"
	"github.com/lix2ng/qdsv/internal/scalar"
	"github.com/lix2ng/qdsv/kummer"
)

// ErrInvalid is returned by Verify and DHExchange when the supplied
// signature or public key does not decode to a valid Kummer point, or (for
// Verify) the verification relation does not hold. No partial output is
// produced on this path.
var ErrInvalid = errors.New("qdsv: invalid signature or key")

// ErrBadLength is returned when an input slice does not have the fixed
// length the wire format requires.
var ErrBadLength = errors.New("qdsv: wrong input length")

// hashToScalar absorbs parts into a fresh BobJr sponge, finishes it, and
// reduces the first 64 bytes of the resulting state modulo the group
// order. Grounded on scalar_get_hrqm (and the r-derivation step of
// qdsa_sign), both of which only ever consume the first 64 of BobJr's 100
// output bytes.
func hashToScalar(parts ...[]byte) scalar.Scalar {
	var sp bobjr.Sponge
	for _, part := range parts {
		sp.Absorb(part)
	}
	state := sp.Finish()
	var wide [64]byte
	copy(wide[:], state[:64])
	var s scalar.Scalar
	s.ReduceWide64(&wide)
	return s
}

// GenerateSeed reads 32 bytes of entropy from rng. If rng is nil,
// crypto/rand.Reader is used, which is the recommended default.
func GenerateSeed(rng io.Reader) ([32]byte, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var seed [32]byte
	_, err := io.ReadFull(rng, seed[:])
	return seed, err
}

// KeyPair derives a 64-byte secret key and 32-byte public key from a
// 32-byte seed. Grounded on qdsa_keypair: the secret key is the full
// 64-byte finalized BobJr state over the seed, not a value truncated down
// to 32 bytes; sk[0:32] later serves as the per-signature nonce seed, and
// sk[32:64] as the raw material for the private scalar.
func KeyPair(seed []byte) (pk [32]byte, sk [64]byte, err error) {
	if len(seed) != 32 {
		return pk, sk, ErrBadLength
	}

	var sp bobjr.Sponge
	sp.Absorb(seed)
	state := sp.Finish()
	copy(sk[:], state[:64])

	var buf32 [32]byte
	copy(buf32[:], sk[32:64])
	var d scalar.Scalar
	d.DecodeReduce32(&buf32)

	var r kummer.Point
	n := d.Bytes()
	kummer.LadderBase250(&r, &n)

	var c kummer.Compressed
	kummer.Compress(&c, &r)
	pk = [32]byte(c)
	return pk, sk, nil
}

// Sign produces a 64-byte signature over msg under sk, the 64-byte secret
// key KeyPair derived for pk. Grounded on qdsa_sign.
func Sign(msg, pk []byte, sk [64]byte) (sig [64]byte, err error) {
	if len(msg) != 32 {
		return sig, ErrBadLength
	}
	if len(pk) != 32 {
		return sig, ErrBadLength
	}

	r := hashToScalar(sk[0:32], msg)

	var capR kummer.Point
	rn := r.Bytes()
	kummer.LadderBase250(&capR, &rn)

	var encR kummer.Compressed
	kummer.Compress(&encR, &capR)
	copy(sig[0:32], encR[:])

	h := hashToScalar(sig[0:32], pk, msg)

	var buf32 [32]byte
	copy(buf32[:], sk[32:64])
	var d scalar.Scalar
	d.DecodeReduce32(&buf32)

	var s scalar.Scalar
	s.SubMul(&r, &h, &d)
	sBytes := s.Bytes()
	copy(sig[32:64], sBytes[:])

	return sig, nil
}

// Verify reports whether sig is a valid signature over msg under pk. It
// returns nil on success, ErrBadLength if an input has the wrong length,
// and ErrInvalid on any other failure: a malformed public key, a malformed
// signature, or a verification relation that does not hold. Grounded on
// qdsa_verify.
func Verify(sig, pk, msg []byte) error {
	if len(sig) != 64 || len(pk) != 32 || len(msg) != 32 {
		return ErrBadLength
	}

	var pkc kummer.Compressed
	copy(pkc[:], pk)
	var q kummer.Point
	if err := kummer.Decompress(&q, &pkc); err != nil {
		return ErrInvalid
	}

	var sBuf [32]byte
	copy(sBuf[:], sig[32:64])
	var s scalar.Scalar
	s.DecodeReduce32(&sBuf)

	h := hashToScalar(sig[0:32], pk, msg)

	var qw kummer.Point
	kummer.Wrap(&qw, &q)

	var hQ kummer.Point
	hn := h.Bytes()
	kummer.Ladder250(&hQ, &q, &qw, &hn)

	var sP kummer.Point
	sn := s.Bytes()
	kummer.LadderBase250(&sP, &sn)

	var xr kummer.Compressed
	copy(xr[:], sig[0:32])
	if err := kummer.Check(&sP, &hQ, &xr); err != nil {
		return ErrInvalid
	}
	return nil
}

// DHKeygen derives a 32-byte public key from a 32-byte secret scalar seed.
// Grounded on qdsa_dh_keygen.
func DHKeygen(sk [32]byte) (pk [32]byte, err error) {
	var d scalar.Scalar
	d.DecodeReduce32(&sk)

	var r kummer.Point
	n := d.Bytes()
	kummer.LadderBase250(&r, &n)

	var c kummer.Compressed
	kummer.Compress(&c, &r)
	return [32]byte(c), nil
}

// DHExchange derives a 32-byte shared secret from a local secret scalar
// and a peer's public key. It returns ErrInvalid if pkRemote does not
// decode to a valid Kummer point. Grounded on qdsa_dh_exchange.
func DHExchange(pkRemote [32]byte, skLocal [32]byte) (ss [32]byte, err error) {
	var pkc kummer.Compressed
	copy(pkc[:], pkRemote[:])
	var pk kummer.Point
	if err := kummer.Decompress(&pk, &pkc); err != nil {
		return ss, ErrInvalid
	}

	var pkw kummer.Point
	kummer.Wrap(&pkw, &pk)

	var d scalar.Scalar
	d.DecodeReduce32(&skLocal)

	var shared kummer.Point
	n := d.Bytes()
	kummer.Ladder250(&shared, &pk, &pkw, &n)

	var c kummer.Compressed
	kummer.Compress(&c, &shared)
	return [32]byte(c), nil
}
