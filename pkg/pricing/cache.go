package pricing

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"

	"github.com/llmcost/llmcost/internal/logx"
)

const cacheDirName = "llm-cost"

// cacheDir resolves the per-user cache directory per spec §4.5.1:
// $XDG_CACHE_HOME/llm-cost, else $HOME/.cache/llm-cost, else
// %LOCALAPPDATA%\llm-cost on Windows. override, when non-empty, takes
// precedence (internal/config's cache_dir).
func cacheDir(override string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return filepath.Join(v, cacheDirName)
	}
	if v := os.Getenv("HOME"); v != "" {
		return filepath.Join(v, ".cache", cacheDirName)
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("LOCALAPPDATA"); v != "" {
			return filepath.Join(v, cacheDirName)
		}
	}
	return ""
}

// readCachedCatalog reads pricing_db.json and pricing_db.json.sig from the
// cache directory under a shared flock on pricing_db.json.lock, so a
// concurrent external updater never races a reader onto a half-written
// file. Any failure (missing files, lock error, read error) is reported
// via ok=false; the caller falls through to the embedded catalog silently,
// per spec §4.5.1.
func readCachedCatalog(dir string) (data, sig []byte, ok bool) {
	if dir == "" {
		return nil, nil, false
	}
	dbPath := filepath.Join(dir, "pricing_db.json")
	sigPath := filepath.Join(dir, "pricing_db.json.sig")
	lockPath := filepath.Join(dir, "pricing_db.json.lock")

	if _, err := os.Stat(dbPath); err != nil {
		return nil, nil, false
	}
	if _, err := os.Stat(sigPath); err != nil {
		return nil, nil, false
	}

	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryRLock()
	if err != nil || !locked {
		logx.L().Debugw("pricing cache lock unavailable", "path", lockPath, "error", err)
		return nil, nil, false
	}
	defer func() {
		if unlockErr := fileLock.Unlock(); unlockErr != nil {
			logx.L().Debugw("pricing cache unlock failed", "path", lockPath, "error", unlockErr)
		}
	}()

	data, err = os.ReadFile(dbPath)
	if err != nil {
		logx.L().Debugw("pricing cache read failed", "path", dbPath, "error", err)
		return nil, nil, false
	}
	sig, err = os.ReadFile(sigPath)
	if err != nil {
		logx.L().Debugw("pricing cache signature read failed", "path", sigPath, "error", err)
		return nil, nil, false
	}
	return data, sig, true
}
