// Package scanner walks the master and duplicate trees and produces the
// ordered list of DuplicateGroup values the executors consume. Grouping is
// two-phase: files are bucketed by size, then candidates are confirmed with
// a full SHA256 fingerprint (large files get a cheap prescreen hash first so
// unique files are never read end to end).
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fenilsonani/relink/internal/config"
	"github.com/fenilsonani/relink/pkg/utils"
)

const quickHashChunk = 1 * 1024 * 1024

// Scanner finds duplicate files across two directory trees
type Scanner struct {
	config *config.Config
	log    zerolog.Logger
}

// New creates a new Scanner
func New(cfg *config.Config, log zerolog.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		log:    log,
	}
}

type candidate struct {
	path     string
	size     int64
	inMaster bool
}

// Scan walks masterDir and dupDir and returns the duplicate groups found.
// Group order and duplicate order within a group are deterministic: groups
// are sorted by master path, duplicates lexicographically.
func (s *Scanner) Scan(masterDir, dupDir string) (*ScanResult, error) {
	result := &ScanResult{}

	minSize := s.config.MinFileSizeBytes()
	quickThreshold := s.config.QuickHashThresholdBytes()

	bySize := make(map[int64][]candidate)
	seen := make(map[string]bool) // inode-identity guard when trees overlap

	collect := func(root string, inMaster bool) error {
		return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				result.Errors = append(result.Errors, err)
				return nil
			}
			if info.IsDir() || !info.Mode().IsRegular() {
				return nil
			}
			if info.Size() < minSize {
				return nil
			}
			if s.excluded(path) {
				return nil
			}
			if seen[path] {
				return nil
			}
			seen[path] = true

			result.FilesScanned++
			bySize[info.Size()] = append(bySize[info.Size()], candidate{
				path:     path,
				size:     info.Size(),
				inMaster: inMaster,
			})
			return nil
		})
	}

	if err := collect(masterDir, true); err != nil {
		return nil, err
	}
	if dupDir != masterDir {
		if err := collect(dupDir, false); err != nil {
			return nil, err
		}
	}

	s.log.Debug().
		Int("files", result.FilesScanned).
		Int("size_buckets", len(bySize)).
		Msg("walk complete, fingerprinting candidates")

	byHash := make(map[string][]candidate)
	for size, candidates := range bySize {
		if len(candidates) < 2 {
			continue
		}

		// Prescreen large buckets so unique large files are read cheaply
		if size >= quickThreshold && quickThreshold > 0 {
			candidates = s.prescreen(candidates, result)
		}

		for _, c := range candidates {
			hash, err := utils.HashFile(c.path)
			if err != nil {
				result.Errors = append(result.Errors, err)
				continue
			}
			result.FilesHashed++
			byHash[hash] = append(byHash[hash], c)
		}
	}

	for hash, members := range byHash {
		if len(members) < 2 {
			continue
		}
		result.Groups = append(result.Groups, buildGroup(hash, members))
	}

	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Master < result.Groups[j].Master
	})

	for i := range result.Groups {
		result.WastedBytes += result.Groups[i].WastedBytes()
	}

	s.log.Info().
		Int("groups", len(result.Groups)).
		Int64("wasted_bytes", result.WastedBytes).
		Msg("scan complete")

	return result, nil
}

// prescreen drops candidates whose quick hash is unique within the bucket
func (s *Scanner) prescreen(candidates []candidate, result *ScanResult) []candidate {
	byQuick := make(map[string][]candidate)
	for _, c := range candidates {
		quick, err := utils.HashFileQuick(c.path, quickHashChunk)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		byQuick[quick] = append(byQuick[quick], c)
	}

	var kept []candidate
	for _, group := range byQuick {
		if len(group) >= 2 {
			kept = append(kept, group...)
		}
	}
	return kept
}

// buildGroup picks the master and orders the duplicates. Files under the
// master tree are preferred as master; ties break lexicographically.
func buildGroup(hash string, members []candidate) DuplicateGroup {
	sort.Slice(members, func(i, j int) bool {
		if members[i].inMaster != members[j].inMaster {
			return members[i].inMaster
		}
		return members[i].path < members[j].path
	})

	group := DuplicateGroup{
		Hash:   hash,
		Size:   members[0].size,
		Master: members[0].path,
	}
	for _, m := range members[1:] {
		group.Duplicates = append(group.Duplicates, m.path)
	}
	return group
}

func (s *Scanner) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range s.config.ExcludePatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if strings.Contains(pattern, "/") {
			if ok, _ := filepath.Match(pattern, path); ok {
				return true
			}
		}
	}
	return false
}
