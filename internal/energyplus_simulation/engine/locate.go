package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
)

// installGlobs are the usual EnergyPlus install locations per platform.
var installGlobs = map[string][]string{
	"windows": {
		`C:/EnergyPlusV*`,
		`C:/Program Files/EnergyPlusV*`,
		`C:/Program Files (x86)/EnergyPlusV*`,
	},
	"linux":  {"/usr/local/EnergyPlus-*", "/opt/EnergyPlus-*"},
	"darwin": {"/Applications/EnergyPlus-*"},
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return "energyplus.exe"
	}
	return "energyplus"
}

// Locate finds the EnergyPlus executable. It tries binary on PATH (or as a
// path), then inside root, then the newest version in the usual install
// directories.
func Locate(binary, root string) (string, error) {
	if binary != "" {
		if p, err := exec.LookPath(binary); err == nil {
			return p, nil
		}
	}

	var candidates []string
	if root != "" {
		candidates = append(candidates, filepath.Join(root, executableName()))
	}
	for _, pattern := range installGlobs[runtime.GOOS] {
		matches, _ := filepath.Glob(pattern)
		sort.Sort(sort.Reverse(sort.StringSlice(matches)))
		for _, m := range matches {
			candidates = append(candidates, filepath.Join(m, executableName()))
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w (binary %q, root %q)", domain.ErrEngineNotFound, binary, root)
}
