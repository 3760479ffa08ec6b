package apps

import (
	"sort"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/feltlab/residue/internal/procs"
)

// Entry is one Add/Remove Programs registry entry. After an incomplete
// uninstall these entries often survive even though the uninstaller binary
// they point at is gone.
type Entry struct {
	Name            string
	Version         string
	Publisher       string
	UninstallString string
	InstallLocation string
	IsSystem        bool
}

// registrySource describes one registry hive + path to scan.
type registrySource struct {
	root registry.Key
	path string
}

// uninstallSources are the three standard locations for installed programs.
var uninstallSources = []registrySource{
	{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.CURRENT_USER, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// List reads uninstall entries from the Windows registry. When pattern is
// non-empty, only entries whose display name matches it are returned; with
// showAll, system components are included too.
func List(pattern string, showAll bool) ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry

	for _, src := range uninstallSources {
		found, err := readEntries(src.root, src.path)
		if err != nil {
			// Registry path may not exist (e.g., WOW6432Node on 32-bit);
			// skip silently.
			continue
		}

		for _, e := range found {
			key := strings.ToLower(e.Name + "|" + e.Version)
			if seen[key] {
				continue
			}
			seen[key] = true

			if e.IsSystem && !showAll {
				continue
			}
			if pattern != "" && !procs.Matches(e.Name, pattern) {
				continue
			}

			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}

func readEntries(root registry.Key, path string) ([]Entry, error) {
	key, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	subkeys, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, name := range subkeys {
		e, readErr := readEntry(root, path+`\`+name)
		if readErr != nil || e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func readEntry(root registry.Key, path string) (Entry, error) {
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return Entry{}, err
	}
	defer key.Close()

	e := Entry{
		Name:            readStringValue(key, "DisplayName"),
		Version:         readStringValue(key, "DisplayVersion"),
		Publisher:       readStringValue(key, "Publisher"),
		UninstallString: readStringValue(key, "UninstallString"),
		InstallLocation: readStringValue(key, "InstallLocation"),
	}

	// SystemComponent is a DWORD (1 = system).
	if sc, _, scErr := key.GetIntegerValue("SystemComponent"); scErr == nil {
		e.IsSystem = sc == 1
	}

	return e, nil
}

// readStringValue safely reads a string value from a registry key.
// Returns an empty string on any error.
func readStringValue(key registry.Key, name string) string {
	val, _, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	return val
}
