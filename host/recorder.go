package host

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"
)

// TranscriptVersion is the engine transcript format version. Replaying a
// transcript with a different major version fails.
var TranscriptVersion = semver.MustParse("1.0.0")

const (
	opMultiMillerLoop     = "multi_miller_loop"
	opFinalExponentiation = "final_exponentiation"
	opMSMG1               = "msm_g1"
)

// EngineCall is one recorded engine invocation: the operation name, a
// SHA3-256 digest binding the operand lists, and the produced output.
type EngineCall struct {
	Op     string `cbor:"op"`
	Digest []byte `cbor:"digest"`
	Output []byte `cbor:"output"`
}

// Transcript is a replayable log of engine calls, e.g. captured against the
// software engine and replayed against an accelerated one (or vice versa)
// when debugging cross-implementation divergence.
type Transcript struct {
	Version string       `cbor:"version"`
	Calls   []EngineCall `cbor:"calls"`
}

// Recorder wraps an engine and records every successful call.
type Recorder struct {
	inner Engine

	mu    sync.Mutex
	calls []EngineCall
}

// NewRecorder returns a Recorder delegating to inner.
func NewRecorder(inner Engine) *Recorder {
	return &Recorder{inner: inner}
}

func (r *Recorder) MultiMillerLoop(g1s, g2s [][]byte) ([]byte, error) {
	out, err := r.inner.MultiMillerLoop(g1s, g2s)
	if err != nil {
		return nil, err
	}
	r.record(opMultiMillerLoop, callDigest(opMultiMillerLoop, g1s, g2s), out)
	return out, nil
}

func (r *Recorder) FinalExponentiation(gt []byte) ([]byte, error) {
	out, err := r.inner.FinalExponentiation(gt)
	if err != nil {
		return nil, err
	}
	r.record(opFinalExponentiation, callDigest(opFinalExponentiation, [][]byte{gt}), out)
	return out, nil
}

func (r *Recorder) MSMG1(bases, scalars [][]byte) ([]byte, error) {
	out, err := r.inner.MSMG1(bases, scalars)
	if err != nil {
		return nil, err
	}
	r.record(opMSMG1, callDigest(opMSMG1, bases, scalars), out)
	return out, nil
}

func (r *Recorder) record(op string, digest, out []byte) {
	r.mu.Lock()
	r.calls = append(r.calls, EngineCall{Op: op, Digest: digest, Output: out})
	r.mu.Unlock()
}

// Transcript snapshots the calls recorded so far.
func (r *Recorder) Transcript() Transcript {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]EngineCall, len(r.calls))
	copy(calls, r.calls)
	return Transcript{Version: TranscriptVersion.String(), Calls: calls}
}

// transcripts serialize as deterministic CBOR
func cborEncMode() (cbor.EncMode, error) {
	return cbor.CoreDetEncOptions().EncMode()
}

// Save writes the transcript as deterministic CBOR.
func (r *Recorder) Save(w io.Writer) error {
	enc, err := cborEncMode()
	if err != nil {
		return err
	}
	t := r.Transcript()
	return enc.NewEncoder(w).Encode(&t)
}

// LoadTranscript reads a CBOR transcript and checks its format version.
func LoadTranscript(rd io.Reader) (Transcript, error) {
	var t Transcript
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return t, err
	}
	if err := dm.NewDecoder(rd).Decode(&t); err != nil {
		return t, fmt.Errorf("decoding transcript: %w", err)
	}
	v, err := semver.Parse(t.Version)
	if err != nil {
		return t, fmt.Errorf("parsing transcript version: %w", err)
	}
	if v.Major != TranscriptVersion.Major {
		return t, fmt.Errorf("incompatible transcript version %s (want %d.x.x)", t.Version, TranscriptVersion.Major)
	}
	return t, nil
}

// Replayer serves recorded outputs keyed by operation and operand digest.
// It performs no arithmetic and fails on any call not in the transcript.
type Replayer struct {
	outputs map[string][]byte
}

// NewReplayer indexes a transcript for replay.
func NewReplayer(t Transcript) *Replayer {
	outputs := make(map[string][]byte, len(t.Calls))
	for _, c := range t.Calls {
		outputs[c.Op+":"+hex.EncodeToString(c.Digest)] = c.Output
	}
	return &Replayer{outputs: outputs}
}

func (r *Replayer) MultiMillerLoop(g1s, g2s [][]byte) ([]byte, error) {
	return r.lookup(opMultiMillerLoop, callDigest(opMultiMillerLoop, g1s, g2s))
}

func (r *Replayer) FinalExponentiation(gt []byte) ([]byte, error) {
	return r.lookup(opFinalExponentiation, callDigest(opFinalExponentiation, [][]byte{gt}))
}

func (r *Replayer) MSMG1(bases, scalars [][]byte) ([]byte, error) {
	return r.lookup(opMSMG1, callDigest(opMSMG1, bases, scalars))
}

func (r *Replayer) lookup(op string, digest []byte) ([]byte, error) {
	out, ok := r.outputs[op+":"+hex.EncodeToString(digest)]
	if !ok {
		return nil, fmt.Errorf("%w: no recorded output for %s call", ErrEngineFailure, op)
	}
	return out, nil
}

// callDigest hashes the operation name and length-prefixed operand lists so
// that distinct call shapes can never collide.
func callDigest(op string, lists ...[][]byte) []byte {
	h := sha3.New256()
	h.Write([]byte(op))
	var lenBuf [8]byte
	for _, list := range lists {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(list)))
		h.Write(lenBuf[:])
		for _, item := range list {
			binary.BigEndian.PutUint64(lenBuf[:], uint64(len(item)))
			h.Write(lenBuf[:])
			h.Write(item)
		}
	}
	return h.Sum(nil)
}
