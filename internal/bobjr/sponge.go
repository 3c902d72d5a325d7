package bobjr

import "encoding/binary"

const (
	rate     = 68
	nrounds  = 10
	stateLen = 25 * 4
)

// Sponge is a Bob Jr. absorb/finish state. The zero value is ready to
// absorb, matching bobjr_init's trivial all-zero initialization.
type Sponge struct {
	state [stateLen]byte
	ptr   int
}

// Absorb feeds data into the sponge, permuting every time a full rate
// block (68 bytes) accumulates. Grounded on bobjr_absorb_wa: each block
// is written directly into the state (overwrite mode), not XORed in.
func (s *Sponge) Absorb(data []byte) {
	ptr := s.ptr
	for len(data) > 0 {
		n := rate - ptr
		if n > len(data) {
			n = len(data)
		}
		copy(s.state[ptr:ptr+n], data[:n])
		data = data[n:]
		ptr += n
		if ptr == rate {
			s.permuteState()
			ptr = 0
		}
	}
	s.ptr = ptr
}

// Finish pads the current rate block with the Keccak pad10*1 rule, runs
// the final permutation, and returns the full 100-byte state (64 of
// which carry onward into a scalar reduction by the caller). The sponge
// is then reset to its all-zero initial state, ready to absorb a new
// message. Grounded on bobjr_finish_wa.
func (s *Sponge) Finish() [stateLen]byte {
	ptr := s.ptr
	for i := ptr; i < rate; i++ {
		s.state[i] = 0
	}
	s.state[ptr] = 0x01
	s.state[rate-1] |= 0x80
	s.permuteState()
	out := s.state
	s.state = [stateLen]byte{}
	s.ptr = 0
	return out
}

// permuteState converts the byte-addressable state to Keccak's 25-lane
// word form, runs the fixed-round permutation, and converts back.
func (s *Sponge) permuteState() {
	var A [25]uint32
	for i := range A {
		A[i] = binary.LittleEndian.Uint32(s.state[4*i:])
	}
	permute(&A, nrounds)
	for i := range A {
		binary.LittleEndian.PutUint32(s.state[4*i:], A[i])
	}
}
