package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/feltlab/residue/internal/envutil"
)

// Profile describes one application's residue: the process names to stop, the
// paths to sweep, and the registry keys to (optionally) remove. Profiles are
// immutable once built; the pipeline only ever reads them.
type Profile struct {
	// Name is the display name of the application being cleaned up.
	Name string `toml:"name"`

	// ProcessPattern is a substring matched against running process names.
	// Matching is case-insensitive, following Windows convention.
	ProcessPattern string `toml:"process_pattern"`

	// ServicePattern is a substring matched against Windows service names.
	// Empty means no service stop is attempted.
	ServicePattern string `toml:"service_pattern"`

	// Paths is the ordered list of filesystem paths to sweep. Entries may
	// contain %VAR% or $VAR environment references.
	Paths []string `toml:"paths"`

	// RegistryKeys is the list of registry keys the optional registry sweep
	// removes, written as ROOT\path (e.g. HKCU\Software\Vendor).
	RegistryKeys []string `toml:"registry_keys"`
}

// ExpandedPaths returns the profile paths with environment variables resolved
// and the result cleaned. Order is preserved.
func (p *Profile) ExpandedPaths() []string {
	out := make([]string, 0, len(p.Paths))
	for _, raw := range p.Paths {
		out = append(out, filepath.Clean(envutil.ExpandWindowsEnv(raw)))
	}
	return out
}

// WantsMachineKeys reports whether any registry key in the profile lives under
// HKLM, which requires elevation to delete.
func (p *Profile) WantsMachineKeys() bool {
	for _, key := range p.RegistryKeys {
		upper := strings.ToUpper(key)
		if strings.HasPrefix(upper, `HKLM\`) || strings.HasPrefix(upper, `HKEY_LOCAL_MACHINE\`) {
			return true
		}
	}
	return false
}

// Load reads a profile from a TOML file and validates it.
func Load(path string) (*Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks that the profile is usable: it must name the app, and every
// path entry must be absolute once expanded so a sweep can never wander into
// a relative location.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if p.ProcessPattern == "" && len(p.Paths) == 0 && len(p.RegistryKeys) == 0 {
		return fmt.Errorf("profile %q has no targets", p.Name)
	}
	for i, raw := range p.Paths {
		expanded := envutil.ExpandWindowsEnv(raw)
		if !filepath.IsAbs(expanded) {
			return fmt.Errorf("path %d (%q) is not absolute after expansion", i, raw)
		}
	}
	return nil
}

// ─── Environment helpers ─────────────────────────────────────────────────────

// userProfile returns the user profile directory.
func userProfile() string {
	return os.Getenv("USERPROFILE")
}

// localAppData returns the local app data directory.
func localAppData() string {
	return os.Getenv("LOCALAPPDATA")
}

// appData returns the roaming app data directory.
func appData() string {
	return os.Getenv("APPDATA")
}

// programFiles returns the Program Files directory.
func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// programData returns the ProgramData directory (e.g., C:\ProgramData).
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// systemDrive returns the system drive letter with backslash (e.g., C:\).
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// ─── Built-in profile ────────────────────────────────────────────────────────

// DefaultProfile returns the built-in cleanup profile for Nimbus Sync, the
// application this tool was originally written to clean up after.
func DefaultProfile() *Profile {
	home := userProfile()
	local := localAppData()
	roaming := appData()

	return &Profile{
		Name:           "Nimbus Sync",
		ProcessPattern: "NimbusSync",
		ServicePattern: "NimbusSync",
		Paths: []string{
			filepath.Join(programFiles(), "Nimbus Sync"),
			filepath.Join(local, "NimbusSync"),
			filepath.Join(roaming, "Nimbusware"),
			filepath.Join(programData(), "Nimbusware"),
			filepath.Join(home, "Desktop", "Nimbus Sync.lnk"),
			filepath.Join(roaming, "Microsoft", "Windows", "Start Menu", "Programs", "Nimbusware"),
		},
		RegistryKeys: []string{
			`HKCU\Software\Nimbusware`,
			`HKLM\SOFTWARE\Nimbusware`,
			`HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\Nimbus Sync`,
		},
	}
}

// NeverDeletePaths returns paths that must NEVER be swept under any
// circumstances, even when a profile lists them or a parent of them.
// Uses environment variables to support Windows installations on any drive.
func NeverDeletePaths() []string {
	w := winDir()
	sd := systemDrive()
	return []string{
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "System32", "config"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "EFI"),
		programFiles(),
		filepath.Join(sd, "Users"),
		programData(),
		filepath.Join(sd, "Recovery"),
		userProfile(),
	}
}
