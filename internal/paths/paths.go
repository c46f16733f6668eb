package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName     = "fixicons"
	ConfigFileName = "fixicons-config.json"
	LogFileName    = "fixicons.log"
	DBFileName     = "fixicons.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// BackupSuffix is appended to an icon filename when the pre-fix bytes
// are set aside before flattening.
const BackupSuffix = ".backup"

// BackupPath returns the sibling backup path for an icon file.
func BackupPath(iconPath string) string {
	return iconPath + BackupSuffix
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for fixicons:
//   - Windows: %APPDATA%\fixicons
//   - Unix:    ~/.config/fixicons
//
// Falls back to os.TempDir()/fixicons if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
