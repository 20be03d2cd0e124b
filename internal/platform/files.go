package platform

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	AMCommand       = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// AndroidDownloadsDir is where files must land to show up in the Gallery
const AndroidDownloadsDir = "/sdcard/Download"

// FallbackFilename is used when the service does not name the file
const FallbackFilename = "video"

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// IsAndroid reports whether the process runs on Android, including fyne
// builds where GOOS is linux
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	if IsAndroid() {
		return AndroidDownloadsDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// SanitizeFilename strips directory components and characters that are not
// allowed in file names on common filesystems
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '|', '?', '*':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return FallbackFilename
	}
	return name
}

// UniquePath returns a path in dir for name that does not exist yet,
// appending " (1)", " (2)" and so on before the extension when needed
func UniquePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate = filepath.Join(dir, base+" ("+strconv.Itoa(i)+")"+ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	if IsAndroid() {
		return openFileInManagerAndroid(absPath)
	}

	switch runtime.GOOS {
	case OSDarwin: // macOS
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openFileInManagerAndroid opens the Downloads folder, then the parent
// directory of the file
func openFileInManagerAndroid(filePath string) error {
	attempts := [][]string{
		{"start", "-a", "android.intent.action.VIEW", "-d", "content://com.android.externalstorage.documents/root/primary/Download"},
		{"start", "-a", "android.intent.action.VIEW", "-d", "file://" + filepath.Dir(filePath)},
	}
	for _, args := range attempts {
		if err := exec.Command(AMCommand, args...).Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to open file in manager: no suitable file manager found")
}

// NotifyMediaScanner notifies Android media scanner about new media files
// This makes downloaded videos appear in the Gallery app
func NotifyMediaScanner(filePath string, logger *slog.Logger) {
	if !IsAndroid() {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.Command(AMCommand, "broadcast", "-a", "android.intent.action.MEDIA_SCANNER_SCAN_FILE", "-d", "file://"+filePath)
	go func() {
		if err := cmd.Run(); err != nil {
			logger.Warn("media scanner notification failed", "path", filePath, "err", err)
		}
	}()
}
