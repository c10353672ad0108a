package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
)

// HashFile computes the SHA256 content fingerprint of a file
func HashFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// HashFileQuick computes a SHA256 fingerprint over the file size plus the
// first and last chunks of the file. It is a prescreen only: two files with
// equal quick hashes still need a full HashFile comparison before they can
// be treated as duplicates.
func HashFileQuick(filepath string, chunkSize int64) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", err
	}

	fileSize := fileInfo.Size()
	hash := sha256.New()

	// Mix in the size so same-prefix files of different lengths differ
	var sizeBuf [8]byte
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(fileSize))
	hash.Write(sizeBuf[:])

	// Small files are hashed whole
	if fileSize <= chunkSize*2 {
		if _, err := io.Copy(hash, file); err != nil {
			return "", err
		}
		return hex.EncodeToString(hash.Sum(nil)), nil
	}

	firstChunk := make([]byte, chunkSize)
	if _, err := io.ReadFull(file, firstChunk); err != nil {
		return "", err
	}
	hash.Write(firstChunk)

	if _, err := file.Seek(-chunkSize, io.SeekEnd); err != nil {
		return "", err
	}
	lastChunk := make([]byte, chunkSize)
	if _, err := io.ReadFull(file, lastChunk); err != nil {
		return "", err
	}
	hash.Write(lastChunk)

	return hex.EncodeToString(hash.Sum(nil)), nil
}
