package vector

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

const partitionExt = ".vec"

// Save writes one little-endian binary partition file per collection under
// dir: dimensions (4), collection ID, record count (4), then the records.
// Each record is its string fields length-prefixed, the time range as
// float64s, and the raw vector. Partition files for collections that no
// longer exist are removed, so dir always mirrors the index.
func (x *Index) Save(dir string) error {
	if dir == "" {
		return nil
	}
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	live := make(map[string]bool, len(x.collections))
	for collID, coll := range x.collections {
		name := partitionFile(collID)
		live[name] = true
		if err := savePartition(filepath.Join(dir, name), x.dimensions, collID, coll); err != nil {
			return fmt.Errorf("save partition %s: %w", collID, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read index dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), partitionExt) && !live[e.Name()] {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return fmt.Errorf("remove stale partition: %w", err)
			}
		}
	}
	return nil
}

func savePartition(path string, dimensions int, collID string, coll map[string]*models.EmbeddingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, uint32(dimensions)); err != nil {
		return err
	}
	if err := writeString(w, collID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(coll))); err != nil {
		return err
	}
	for _, r := range coll {
		for _, s := range []string{r.RecordID, r.ChunkID, r.VideoID, r.Text} {
			if err := writeString(w, s); err != nil {
				return err
			}
		}
		if err := binary.Write(w, binary.LittleEndian, r.StartTime); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, r.EndTime); err != nil {
			return err
		}
		if _, err := w.Write(vectorBytes(r.Vector)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Load replaces the index contents with the partition files under dir. A
// missing directory is not an error; the index stays empty. Dimensions must
// match on every partition.
func (x *Index) Load(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read index dir: %w", err)
	}

	collections := make(map[string]map[string]*models.EmbeddingRecord)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), partitionExt) {
			continue
		}
		collID, coll, err := x.loadPartition(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("load partition %s: %w", e.Name(), err)
		}
		collections[collID] = coll
	}

	x.mu.Lock()
	x.collections = collections
	x.mu.Unlock()
	return nil
}

func (x *Index) loadPartition(path string) (string, map[string]*models.EmbeddingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var dim uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return "", nil, fmt.Errorf("read dimensions: %w", err)
	}
	if int(dim) != x.dimensions {
		return "", nil, fmt.Errorf("dimension mismatch: file has %d, index expects %d", dim, x.dimensions)
	}
	collID, err := readString(r)
	if err != nil {
		return "", nil, fmt.Errorf("read collection id: %w", err)
	}
	var numRecords uint32
	if err := binary.Read(r, binary.LittleEndian, &numRecords); err != nil {
		return "", nil, fmt.Errorf("read record count: %w", err)
	}

	coll := make(map[string]*models.EmbeddingRecord, numRecords)
	vecBuf := make([]byte, x.dimensions*4)
	for i := uint32(0); i < numRecords; i++ {
		rec := &models.EmbeddingRecord{CollectionID: collID}
		for _, dst := range []*string{&rec.RecordID, &rec.ChunkID, &rec.VideoID, &rec.Text} {
			if *dst, err = readString(r); err != nil {
				return "", nil, fmt.Errorf("read record field: %w", err)
			}
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.StartTime); err != nil {
			return "", nil, fmt.Errorf("read start time: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.EndTime); err != nil {
			return "", nil, fmt.Errorf("read end time: %w", err)
		}
		if _, err := io.ReadFull(r, vecBuf); err != nil {
			return "", nil, fmt.Errorf("read vector: %w", err)
		}
		rec.Vector = vectorFromBytes(vecBuf)
		coll[rec.RecordID] = rec
	}
	return collID, coll, nil
}

// partitionFile escapes the collection ID so it is a safe file name; the
// authoritative ID is stored inside the file.
func partitionFile(collID string) string {
	return url.PathEscape(collID) + partitionExt
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func vectorBytes(s []float32) []byte {
	out := make([]byte, len(s)*4)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func vectorFromBytes(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
