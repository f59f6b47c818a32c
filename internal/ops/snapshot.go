package ops

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SnapshotTables archives the .json table files of a data directory into a
// gzipped tarball so a generation run can be reproduced later against the
// exact tables it used. Only top-level .json files are included; the table
// set is flat by contract, so anything else in the directory is not part of
// the snapshot.
func SnapshotTables(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("dataDir and archivePath are required")
	}

	names, err := tableFileNames(dataDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no table files in %s", dataDir)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	for _, name := range names {
		if err := addTableFile(tw, dataDir, name); err != nil {
			return err
		}
	}
	return nil
}

// tableFileNames lists the regular .json files directly under dir, sorted so
// archives of the same table set are laid out identically.
func tableFileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func addTableFile(tw *tar.Writer, dir, name string) error {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(tw, src)
	return err
}

// RestoreTables unpacks a snapshot archive into targetDir. Entries that are
// not plain table files are rejected outright; a snapshot only ever carries
// the flat .json set SnapshotTables wrote.
func RestoreTables(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		name, err := validateTableEntry(hdr)
		if err != nil {
			return err
		}

		dst, err := os.OpenFile(filepath.Join(targetDir, name),
			os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return err
		}
		if err := dst.Close(); err != nil {
			return err
		}
	}

	return nil
}

// validateTableEntry admits only bare .json file names: no directories, no
// path separators, no traversal.
func validateTableEntry(hdr *tar.Header) (string, error) {
	if hdr.Typeflag != tar.TypeReg {
		return "", fmt.Errorf("unexpected archive entry type for %q", hdr.Name)
	}
	name := strings.TrimSpace(hdr.Name)
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid archive entry path: %q", hdr.Name)
	}
	if filepath.Ext(name) != ".json" {
		return "", fmt.Errorf("archive entry %q is not a table file", hdr.Name)
	}
	return name, nil
}

// TablesDigest hashes the table file set of a directory in sorted name
// order. Matching digests before and after a restore prove the snapshot is
// whole.
func TablesDigest(dir string) (string, error) {
	names, err := tableFileNames(filepath.Clean(dir))
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, name := range names {
		_, _ = io.WriteString(h, name)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		if _, err := h.Write(b); err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
