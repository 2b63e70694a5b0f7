package bpe

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// dictionaryVersion is the serialized Dictionary format version.
const dictionaryVersion uint64 = 1

// Dictionary maps every symbol the engine has produced to the bytes it stands
// for. Symbols 0-255 are seeded with their own byte. Each merged symbol holds
// the full concatenation of its two operands' expansions, copied at merge
// time; entries share no storage.
type Dictionary struct {
	expansions [][]byte // indexed by Symbol
	operands   []Pair   // operands[i] built Symbol(symbolBase+i)
}

// NewDictionary returns a Dictionary containing only the 256 byte symbols.
func NewDictionary() *Dictionary {
	d := &Dictionary{expansions: make([][]byte, symbolBase, symbolBase+64)}
	for i := range symbolBase {
		d.expansions[i] = []byte{byte(i)}
	}
	return d
}

// Len returns the number of symbols with an entry, byte symbols included.
func (d *Dictionary) Len() int { return len(d.expansions) }

// Merges returns the number of merged symbols.
func (d *Dictionary) Merges() int { return len(d.operands) }

// Lookup returns the expansion of s. The returned slice must not be modified.
func (d *Dictionary) Lookup(s Symbol) ([]byte, bool) {
	if int(s) >= len(d.expansions) {
		return nil, false
	}
	return d.expansions[s], true
}

// Operands returns the pair merged into s. It reports false for byte symbols
// and symbols not yet assigned.
func (d *Dictionary) Operands(s Symbol) (Pair, bool) {
	if s.IsByte() || int(s) >= len(d.expansions) {
		return Pair{}, false
	}
	return d.operands[s-symbolBase], true
}

// insert records sym as the merge of p. sym must be the next unassigned
// symbol and both operands must already have entries.
func (d *Dictionary) insert(sym Symbol, p Pair) {
	a, b := d.expansions[p.First], d.expansions[p.Second]
	exp := make([]byte, 0, len(a)+len(b))
	exp = append(exp, a...)
	exp = append(exp, b...)
	d.expansions = append(d.expansions, exp)
	d.operands = append(d.operands, p)
}

// AppendExpansion appends the bytes of every token to dst and returns the
// extended slice. It fails on a token with no entry.
func (d *Dictionary) AppendExpansion(dst []byte, tokens []Symbol) ([]byte, error) {
	for i, tok := range tokens {
		exp, ok := d.Lookup(tok)
		if !ok {
			return dst, fmt.Errorf("%w: token %d at %d has no entry", ErrBadDictionary, tok, i)
		}
		dst = append(dst, exp...)
	}
	return dst, nil
}

// Expand returns the bytes the tokens stand for.
func (d *Dictionary) Expand(tokens []Symbol) ([]byte, error) {
	return d.AppendExpansion(nil, tokens)
}

// dictionaryFile is the CBOR shape of a serialized Dictionary. Only operand
// pairs are stored, flattened as first,second,...; expansions are rebuilt on
// load.
type dictionaryFile struct {
	Version  uint64   `cbor:"1,keyasint"`
	Operands []uint16 `cbor:"2,keyasint"`
}

// MarshalBinary implements encoding.BinaryMarshaler using deterministic CBOR.
func (d *Dictionary) MarshalBinary() ([]byte, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	f := dictionaryFile{
		Version:  dictionaryVersion,
		Operands: make([]uint16, 0, 2*len(d.operands)),
	}
	for _, p := range d.operands {
		f.Operands = append(f.Operands, uint16(p.First), uint16(p.Second))
	}
	return em.Marshal(&f)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Every operand must
// refer to a symbol defined before the one it builds.
func (d *Dictionary) UnmarshalBinary(data []byte) error {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return err
	}
	var f dictionaryFile
	if err := dm.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %v", ErrBadDictionary, err)
	}
	if f.Version != dictionaryVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadDictionary, f.Version)
	}
	if len(f.Operands)%2 != 0 || len(f.Operands)/2 > maxMerges {
		return fmt.Errorf("%w: %d operand values", ErrBadDictionary, len(f.Operands))
	}
	fresh := NewDictionary()
	for i := 0; i < len(f.Operands); i += 2 {
		sym := Symbol(fresh.Len())
		p := Pair{Symbol(f.Operands[i]), Symbol(f.Operands[i+1])}
		if p.First >= sym || p.Second >= sym {
			return fmt.Errorf("%w: symbol %d built from undefined operand", ErrBadDictionary, sym)
		}
		fresh.insert(sym, p)
	}
	*d = *fresh
	return nil
}

// WriteTo serializes the Dictionary to w.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	data, err := d.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom replaces the Dictionary with one deserialized from r, reading r to
// EOF.
func (d *Dictionary) ReadFrom(r io.Reader) (int64, error) {
	var buf bytes.Buffer
	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, d.UnmarshalBinary(buf.Bytes())
}
