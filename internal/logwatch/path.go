package logwatch

import (
	"os"
	"path/filepath"
	"runtime"
)

var (
	linuxLogPath   = []string{".local", "share", "Steam", "steamapps", "compatdata", "230410", "pfx", "drive_c", "users", "steamuser", "AppData", "Local", "Warframe", "EE.log"}
	windowsLogPath = []string{"AppData", "Local", "Warframe", "EE.log"}
)

// DefaultPath returns the usual location of the game log for the current OS
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := linuxLogPath
	if runtime.GOOS == "windows" {
		parts = windowsLogPath
	}
	return filepath.Join(append([]string{home}, parts...)...), nil
}
