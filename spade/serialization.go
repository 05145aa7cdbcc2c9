package spade

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

const (
	maxSerializedPoints = 3*MaxSamples + 1
	readChunkPoints     = 1 << 16
)

// WriteProfile serializes p in a 32-bit precision binary format.
func WriteProfile(w io.Writer, p Profile) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p))); err != nil {
		return errors.Wrap(err, "write profile")
	}
	values := make([]float32, 0, len(p)*3)
	for _, c := range p {
		values = append(values, float32(c.X), float32(c.Y), float32(c.Z))
	}
	if err := binary.Write(w, binary.LittleEndian, values); err != nil {
		return errors.Wrap(err, "write profile")
	}
	return nil
}

// ReadProfile reads the output written by WriteProfile.
func ReadProfile(r io.Reader) (Profile, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "read profile")
	}
	if count > maxSerializedPoints {
		return nil, errors.Errorf("read profile: too many points (%d)", count)
	}
	// Memory grows with the points actually read, not with count.
	res := make(Profile, 0, minInt(int(count), readChunkPoints))
	values := make([]float32, 3*minInt(int(count), readChunkPoints))
	for remaining := int(count); remaining > 0; {
		n := minInt(remaining, readChunkPoints)
		chunk := values[:3*n]
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, errors.Wrapf(err, "read profile: point %d of %d", len(res), count)
		}
		for i := 0; i < n; i++ {
			res = append(res, model3d.XYZ(
				float64(chunk[3*i]),
				float64(chunk[3*i+1]),
				float64(chunk[3*i+2]),
			))
		}
		remaining -= n
	}
	return res, nil
}

// SaveProfile writes p to a file, choosing the format from the extension.
//
// A ".json" file stores a JSON array of points, a ".zst" file stores the
// binary format compressed with zstd, and anything else stores the raw
// binary format.
func SaveProfile(path string, p Profile) (err error) {
	defer essentials.AddCtxTo("save profile", &err)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.NewEncoder(f).Encode(p)
	case ".zst":
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return err
		}
		if err := WriteProfile(enc, p); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	default:
		w := bufio.NewWriter(f)
		if err := WriteProfile(w, p); err != nil {
			return err
		}
		return w.Flush()
	}
}

// LoadProfile reads a file written by SaveProfile.
func LoadProfile(path string) (p Profile, err error) {
	defer essentials.AddCtxTo("load profile", &err)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.NewDecoder(f).Decode(&p)
		return p, err
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return ReadProfile(dec)
	default:
		return ReadProfile(bufio.NewReader(f))
	}
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}
