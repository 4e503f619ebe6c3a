package release

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const dirPermission = 0o755

// DownloadInfo describes where one artifact comes from and where it goes.
type DownloadInfo struct {
	RemoteURL string
	FileName  string
	Directory string
}

// Path is the local destination of the artifact.
func (d DownloadInfo) Path() string {
	return filepath.Join(d.Directory, d.FileName)
}

// Builder derives artifact URLs from a feed and local paths below an output root.
type Builder struct {
	feed       string
	outputRoot string
	fs         afero.Fs

	createdDirs map[string]bool
}

// NewBuilder initializes a builder for the given feed base url
func NewBuilder(fs afero.Fs, feed, outputRoot string) *Builder {
	return &Builder{
		feed:        strings.TrimRight(feed, "/"),
		outputRoot:  outputRoot,
		fs:          fs,
		createdDirs: map[string]bool{},
	}
}

// FileName returns the artifact file name. The hosting bundle only ships as a
// windows installer so platform and format are ignored for it.
func FileName(version string, platform Platform, kind Kind, format Format) string {
	if kind == KindHostingBundle {
		return fmt.Sprintf("%s-%s-win.exe", kind.FilePrefix(), version)
	}
	return fmt.Sprintf("%s-%s-%s.%s", kind.FilePrefix(), version, platform.FileNameID(), format)
}

// BuildDownloadInfo returns the remote url and file name of one artifact. The
// directory is left empty, see OutputDirectoryFor.
func (b *Builder) BuildDownloadInfo(version string, platform Platform, kind Kind, format Format) DownloadInfo {
	fileName := FileName(version, platform, kind, format)
	return DownloadInfo{
		RemoteURL: fmt.Sprintf("%s/%s/%s/%s", b.feed, kind.URLSegment(), version, fileName),
		FileName:  fileName,
	}
}

// MetadataURL is the latest.version endpoint of a channel for the given kind.
func MetadataURL(feed, channel string, kind Kind) string {
	return fmt.Sprintf("%s/%s/%s/latest.version", strings.TrimRight(feed, "/"), kind.MetadataSegment(), channel)
}

// OutputDirectory returns the directory artifacts of kind in channel are stored in.
func (b *Builder) OutputDirectory(channel string, kind Kind) string {
	return filepath.Join(b.outputRoot, channel, kind.OutputDirName())
}

// OutputDirectoryFor is OutputDirectory, creating the directory when missing.
func (b *Builder) OutputDirectoryFor(channel string, kind Kind) (string, error) {
	dir := b.OutputDirectory(channel, kind)
	if b.createdDirs[dir] {
		return dir, nil
	}
	if err := b.fs.MkdirAll(dir, dirPermission); err != nil {
		return "", fmt.Errorf("error creating output directory %s: %w", dir, err)
	}
	b.createdDirs[dir] = true
	return dir, nil
}
