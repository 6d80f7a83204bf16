package config

import (
	"os"
	"strconv"
)

const (
	DefaultTemplatePath = "./mainTemplate.gradle"
	DefaultToolchain    = "modern"
	DefaultBackupKeep   = 10
)

// TemplatePath returns the build template path from GRADMEND_TEMPLATE,
// falling back to DefaultTemplatePath.
func TemplatePath() string {
	if env := os.Getenv("GRADMEND_TEMPLATE"); env != "" {
		return env
	}
	return DefaultTemplatePath
}

// Toolchain returns the toolchain name from GRADMEND_TOOLCHAIN,
// falling back to DefaultToolchain.
func Toolchain() string {
	if env := os.Getenv("GRADMEND_TOOLCHAIN"); env != "" {
		return env
	}
	return DefaultToolchain
}

// BackupKeep returns the backup retention count from GRADMEND_BACKUP_KEEP,
// falling back to DefaultBackupKeep.
func BackupKeep() int {
	if env := os.Getenv("GRADMEND_BACKUP_KEEP"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	return DefaultBackupKeep
}
