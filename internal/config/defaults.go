package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Action:             "hardlink", // Safest: content stays reachable through every path
		FallbackToSymlink:  false,      // Cross-device fallback requires explicit opt-in
		MinFileSize:        "1KB",      // Linking tiny files saves nothing
		QuickHashThreshold: "10MB",     // Larger files get a prescreen hash before the full one
		ExcludePatterns: []string{
			"*.part",
			"*.tmp",
			"*.swp",
			".DS_Store",
		},
		ProtectedPaths: []string{
			"/",
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/run",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			"/System",
			"/Applications",
			"/Library/System",
		},
		AuditLogDir: "", // Resolved to ~/.local/state/relink at run time
		DryRun:      false,
		Verbose:     false,
	}
}
