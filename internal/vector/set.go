package vector

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Set is an ordered collection of embeddings of one entity category.
// Every vector has length Dimensions.
type Set struct {
	Dimensions int
	IDs        []string
	Vectors    [][]float32
	index      map[string]int
}

// NewSet creates an empty set with the given dimension.
func NewSet(dimensions int) (*Set, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Set{Dimensions: dimensions, index: make(map[string]int)}, nil
}

// Add appends vectors with the given IDs. A later duplicate ID replaces the earlier vector.
func (s *Set) Add(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch: %d ids, %d vectors", len(ids), len(vectors))
	}
	for i, id := range ids {
		if len(vectors[i]) != s.Dimensions {
			return fmt.Errorf("vector %q dimension mismatch: got %d, expected %d", id, len(vectors[i]), s.Dimensions)
		}
		vec := make([]float32, s.Dimensions)
		copy(vec, vectors[i])
		if pos, ok := s.index[id]; ok {
			s.Vectors[pos] = vec
			continue
		}
		s.index[id] = len(s.IDs)
		s.IDs = append(s.IDs, id)
		s.Vectors = append(s.Vectors, vec)
	}
	return nil
}

// Len returns the number of vectors.
func (s *Set) Len() int {
	return len(s.IDs)
}

// Get returns the vector for id.
func (s *Set) Get(id string) ([]float32, bool) {
	pos, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.Vectors[pos], true
}

// Align returns one vector per id in ids order. IDs without an embedding get
// a zero vector and are reported in missing.
func (s *Set) Align(ids []string) (vectors [][]float32, missing []string) {
	vectors = make([][]float32, len(ids))
	for i, id := range ids {
		if v, ok := s.Get(id); ok {
			vectors[i] = v
			continue
		}
		vectors[i] = make([]float32, s.Dimensions)
		missing = append(missing, id)
	}
	return vectors, missing
}

// Save writes the set to path, creating parent directories. Format (little
// endian): dimension u32, count u32, then per vector idLen u32, id bytes,
// dimension float32 values.
func (s *Set) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create embeddings dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create embeddings file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := s.write(w); err != nil {
		return err
	}
	return w.Flush()
}

func (s *Set) write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(s.Dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.IDs))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for i, id := range s.IDs {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(id))); err != nil {
			return fmt.Errorf("write id len: %w", err)
		}
		if _, err := io.WriteString(w, id); err != nil {
			return fmt.Errorf("write id: %w", err)
		}
		if _, err := w.Write(float32SliceToBytes(s.Vectors[i])); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}
	return nil
}

// LoadSet reads a set written by Save. When dimensions > 0 the file's
// dimension must match it.
func LoadSet(path string, dimensions int) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embeddings file: %w", err)
	}
	defer f.Close()
	return ReadSet(bufio.NewReader(f), dimensions)
}

// ErrDimensionMismatch is returned when an embedding file has an unexpected dimension.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// ReadSet decodes a set from r. See Save for the format.
func ReadSet(r io.Reader, dimensions int) (*Set, error) {
	var dim, n uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read dimensions: %w", err)
	}
	if dimensions > 0 && int(dim) != dimensions {
		return nil, fmt.Errorf("%w: file has %d, expected %d", ErrDimensionMismatch, dim, dimensions)
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	set, err := NewSet(int(dim))
	if err != nil {
		return nil, err
	}
	buf := make([]byte, int(dim)*4)
	for i := uint32(0); i < n; i++ {
		var idLen uint32
		if err := binary.Read(r, binary.LittleEndian, &idLen); err != nil {
			return nil, fmt.Errorf("read id len: %w", err)
		}
		idBytes := make([]byte, idLen)
		if _, err := io.ReadFull(r, idBytes); err != nil {
			return nil, fmt.Errorf("read id: %w", err)
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read vector: %w", err)
		}
		if err := set.Add([]string{string(idBytes)}, [][]float32{bytesToFloat32Slice(buf)}); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
