package fsutil

// File and directory permission constants used when writing configuration
// and extracted game files.
const (
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeExec    = 0o755 // -rwxr-xr-x: eboot.bin and other executables

	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories
)

// Layout of an installed title.
const (
	SysDirName     = "sce_sys"
	ParamSFOName   = "param.sfo"
	EbootName      = "eboot.bin"
	PatchDirSuffix = "-patch"
)
