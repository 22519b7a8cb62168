package export

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/mfalcone/seizgraph/pkg/seiz"
)

// Archive format: [Magic:4][Version:1][DataLen:4][Data:N][Checksum:4]
// where Data is the snappy-compressed JSON encoding of the run record
// and the checksum covers the compressed bytes.
const (
	archiveMagic   = 0x5345495A // "SEIZ"
	archiveVersion = 1
)

// CompressionStats reports how well a record compressed.
type CompressionStats struct {
	BytesUncompressed uint64
	BytesCompressed   uint64
	CompressionRatio  float64 // e.g., 0.75 = 75% compression
}

// WriteCompressed writes the run record to path as a snappy-compressed
// archive and reports compression statistics.
func WriteCompressed(path string, record *seiz.RunRecord) (CompressionStats, error) {
	var stats CompressionStats

	data, err := json.Marshal(record)
	if err != nil {
		return stats, fmt.Errorf("failed to encode run record: %w", err)
	}

	compressed := snappy.Encode(nil, data)
	checksum := crc32.ChecksumIEEE(compressed)

	stats.BytesUncompressed = uint64(len(data))
	stats.BytesCompressed = uint64(len(compressed))
	if stats.BytesUncompressed > 0 {
		stats.CompressionRatio = 1.0 - (float64(stats.BytesCompressed) / float64(stats.BytesUncompressed))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return stats, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return stats, fmt.Errorf("failed to create archive: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	if err := binary.Write(writer, binary.BigEndian, uint32(archiveMagic)); err != nil {
		return stats, err
	}
	if err := writer.WriteByte(archiveVersion); err != nil {
		return stats, err
	}
	if err := binary.Write(writer, binary.BigEndian, uint32(len(compressed))); err != nil {
		return stats, err
	}
	if _, err := writer.Write(compressed); err != nil {
		return stats, err
	}
	if err := binary.Write(writer, binary.BigEndian, checksum); err != nil {
		return stats, err
	}

	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush archive: %w", err)
	}
	if err := file.Sync(); err != nil {
		return stats, fmt.Errorf("failed to sync archive: %w", err)
	}

	return stats, nil
}

// ReadCompressed loads a run record from a snappy-compressed archive,
// verifying the checksum.
func ReadCompressed(path string) (*seiz.RunRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var magic uint32
	if err := binary.Read(reader, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read archive header: %w", err)
	}
	if magic != archiveMagic {
		return nil, fmt.Errorf("not a run archive: bad magic 0x%08X", magic)
	}

	version, err := reader.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("failed to read archive version: %w", err)
	}
	if version != archiveVersion {
		return nil, fmt.Errorf("unsupported archive version %d", version)
	}

	var dataLen uint32
	if err := binary.Read(reader, binary.BigEndian, &dataLen); err != nil {
		return nil, fmt.Errorf("failed to read data length: %w", err)
	}

	compressed := make([]byte, dataLen)
	if _, err := io.ReadFull(reader, compressed); err != nil {
		return nil, fmt.Errorf("failed to read archive data: %w", err)
	}

	var checksum uint32
	if err := binary.Read(reader, binary.BigEndian, &checksum); err != nil {
		return nil, fmt.Errorf("failed to read checksum: %w", err)
	}
	if crc32.ChecksumIEEE(compressed) != checksum {
		return nil, fmt.Errorf("checksum mismatch: archive corrupted")
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress archive: %w", err)
	}

	record := &seiz.RunRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to decode run record: %w", err)
	}
	return record, nil
}
