package obfuscation

import "io/fs"

// FileType is the processing category of a path.
type FileType int

const (
	// Unsupported covers pipes, sockets, character devices and anything else.
	Unsupported FileType = iota
	// Regular is a regular file.
	Regular
	// Block is a block device.
	Block
	// Directory is a directory.
	Directory
)

// Classify returns the FileType for mode.
func Classify(mode fs.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return Regular
	case mode.IsDir():
		return Directory
	case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0:
		return Block
	default:
		return Unsupported
	}
}

func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular file"
	case Block:
		return "block device"
	case Directory:
		return "directory"
	default:
		return "unsupported device type"
	}
}
