// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// WindowsPlatform implements Platform interface for Windows systems
type WindowsPlatform struct{}

// GetConfigDir returns the Windows-appropriate configuration directory
func (w *WindowsPlatform) GetConfigDir() string {
	// Check for explicit override first
	if dir := os.Getenv("REDACTCHECK_CONFIG_DIR"); dir != "" {
		return dir
	}

	// Try APPDATA first (recommended for Windows applications)
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "redact-check")
	}

	// Fallback to user profile directory
	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		return filepath.Join(userProfile, ".redact-check")
	}

	// Last resort fallback
	return ".redact-check"
}

// GetTempDir returns the Windows temporary directory
func (w *WindowsPlatform) GetTempDir() string {
	if temp := os.Getenv("TEMP"); temp != "" {
		return temp
	}
	if tmp := os.Getenv("TMP"); tmp != "" {
		return tmp
	}
	return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local", "Temp")
}

// GetExecutableExtension returns the Windows executable extension
func (w *WindowsPlatform) GetExecutableExtension() string {
	return ".exe"
}

// IsAbsolutePath checks if a path is absolute on Windows
func (w *WindowsPlatform) IsAbsolutePath(path string) bool {
	return filepath.IsAbs(path)
}

// NormalizePath normalizes a path for Windows
func (w *WindowsPlatform) NormalizePath(path string) string {
	// Convert forward slashes to backslashes
	normalized := filepath.Clean(path)

	// Handle UNC paths (\\server\share)
	if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
		normalized = "\\\\" + strings.TrimPrefix(normalized, "\\")
	}

	return normalized
}

// GetSystemInstallDir returns the system-wide installation directory
func (w *WindowsPlatform) GetSystemInstallDir() string {
	if programFiles := os.Getenv("PROGRAMFILES"); programFiles != "" {
		return filepath.Join(programFiles, "redact-check")
	}
	return filepath.Join("C:", "Program Files", "redact-check")
}

// GetUserInstallDir returns the user-specific installation directory
func (w *WindowsPlatform) GetUserInstallDir() string {
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, "Programs", "redact-check")
	}
	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		return filepath.Join(userProfile, "AppData", "Local", "Programs", "redact-check")
	}
	return filepath.Join(".", "redact-check")
}

// GetPathSeparator returns the Windows path separator
func (w *WindowsPlatform) GetPathSeparator() string {
	return "\\"
}

// SupportsCaseSensitivePaths returns false for Windows (case-insensitive by default)
func (w *WindowsPlatform) SupportsCaseSensitivePaths() bool {
	return false
}

// SupportsSymlinks returns true for Windows (supported in Windows 10+ with developer mode)
func (w *WindowsPlatform) SupportsSymlinks() bool {
	// Windows 10+ supports symlinks, but may require developer mode or admin privileges
	// We'll return true but handle errors gracefully in actual symlink operations
	return true
}
