package binstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// WriteIndex serializes idx as a JSON document at path, replacing any previous index.
func WriteIndex(path string, idx *Index) error {
	f, err := os.Create(path)
	if err != nil {
		return errIO("create_index_file", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(idx); err != nil {
		f.Close()
		return errIO("encode_index", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errIO("flush_index_file", err)
	}
	if err := f.Close(); err != nil {
		return errIO("close_index_file", err)
	}
	return nil
}

// ReadIndex loads the index written by WriteIndex.
func ReadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errIO("open_index_file", err)
	}
	defer f.Close()

	idx := &Index{}
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(idx); err != nil {
		return nil, errors.NewTracer("decode_index").Wrap(
			errCorrupt("index", "index file %s is not a valid index document: %v", path, err))
	}
	if idx.Version != IndexVersion {
		return nil, errCorrupt("version", "index version %d, expected %d", idx.Version, IndexVersion)
	}
	if idx.Entries == nil {
		idx.Entries = []IndexEntry{}
	}
	idx.buildLookup()
	return idx, nil
}

// String summarizes the index for logs.
func (i *Index) String() string {
	return fmt.Sprintf("index{build=%s codec=%s records=%d entries=%d}", i.BuildID, i.Codec, i.RecordCount, len(i.Entries))
}
